package domain

import (
	"testing"
	"time"
)

func TestArticleValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		article Article
		want    bool
	}{
		{name: "complete", article: NewArticle("t", "b", "a", time.Time{}), want: true},
		{name: "no title", article: NewArticle("", "b", "a", time.Time{})},
		{name: "no body", article: NewArticle("t", "", "a", time.Time{})},
		{name: "no author", article: NewArticle("t", "b", "", time.Time{})},
	}
	for _, tt := range tests {
		if got := tt.article.Valid(); got != tt.want {
			t.Fatalf("%s: Valid() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestArticleEqualComparesInstants(t *testing.T) {
	t.Parallel()

	utc := time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC)
	shifted := utc.In(time.FixedZone("UTC+3", 3*60*60))

	a := NewArticle("t", "b", "a", utc)
	if !a.Equal(NewArticle("t", "b", "a", shifted)) {
		t.Fatal("same instant in another zone must be equal")
	}
	if a.Equal(NewArticle("t", "b2", "a", utc)) {
		t.Fatal("different body must not be equal")
	}
}

func TestWithCreationDateLeavesOriginal(t *testing.T) {
	t.Parallel()

	a := NewArticle("t", "b", "a", time.Time{})
	b := a.WithCreationDate(time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC))

	if a.HasDate() {
		t.Fatal("original article gained a date")
	}
	if !b.HasDate() || b.Year() != 2023 {
		t.Fatalf("unexpected copy: %+v", b)
	}
}

func TestDate(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC-5", -5*60*60)
	got := Date(time.Date(2026, time.October, 14, 2, 0, 0, 0, time.UTC), loc)
	want := time.Date(2026, time.October, 13, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if got := Date(time.Date(2026, time.October, 14, 23, 0, 0, 0, time.UTC), nil); got.Hour() != 0 || got.Day() != 14 {
		t.Fatalf("nil location should default to UTC, got %v", got)
	}
}
