package discovery

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const fixtureCorpus = `{
  "posts": [
    {
      "id": "post-doi",
      "user": {"id": "u-1", "name": "mint.travels"},
      "caption": "พระอาทิตย์ตกที่ดอยสุเทพ",
      "tags": ["เชียงใหม่", "ดอยสุเทพ"],
      "locationId": "doi-suthep",
      "location": {"name": "Doi Suthep", "nameLocal": "ดอยสุเทพ", "province": "Chiang Mai"},
      "likeCount": 1200,
      "commentCount": 80,
      "createdAt": "2026-08-20T10:00:00Z",
      "isPublic": true
    },
    {
      "id": "post-sea",
      "user": {"id": "u-2", "name": "island.hopper"},
      "caption": "ทะเลกระบี่น้ำใส",
      "tags": ["กระบี่"],
      "location": {"name": "Railay", "province": "Krabi"},
      "likeCount": 50,
      "createdAt": "2026-08-20T10:00:00Z",
      "isPublic": true
    }
  ],
  "locations": [
    {
      "id": "doi-suthep",
      "name": "Doi Suthep",
      "nameLocal": "ดอยสุเทพ",
      "province": "Chiang Mai",
      "geo": {"lat": 18.8048, "lng": 98.9216},
      "popularityScore": 95
    },
    {
      "id": "nimman",
      "name": "Nimmanhaemin",
      "nameLocal": "นิมมาน",
      "province": "Chiang Mai",
      "geo": {"lat": 18.8003, "lng": 98.9674},
      "popularityScore": 88
    }
  ]
}`

const fixtureGazetteer = `expansions:
  Chiang Mai:
    popular_places:
      - ดอยสุเทพ
      - นิมมาน
    aliases:
      - เชียงใหม่
`

func writeFixtures(t *testing.T) (corpusPath, gazetteerPath string) {
	t.Helper()
	dir := t.TempDir()
	corpusPath = filepath.Join(dir, "corpus.json")
	gazetteerPath = filepath.Join(dir, "gazetteer.yaml")
	if err := os.WriteFile(corpusPath, []byte(fixtureCorpus), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(gazetteerPath, []byte(fixtureGazetteer), 0o600); err != nil {
		t.Fatal(err)
	}
	return corpusPath, gazetteerPath
}

func TestNew_EndToEnd(t *testing.T) {
	ctx := context.Background()
	corpusPath, gazetteerPath := writeFixtures(t)

	client, err := New(ctx,
		WithCorpusFile(corpusPath),
		WithGazetteerFile(gazetteerPath),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	resp, err := client.Search(ctx, SearchQuery{Query: "เชียงใหม่"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Post.ID != "post-doi" {
		t.Fatalf("results = %+v", resp.Results)
	}

	nearby, err := client.Nearby(ctx, "doi-suthep", 25, 10)
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}
	if len(nearby) != 1 || nearby[0].Location.ID != "nimman" {
		t.Errorf("nearby = %+v", nearby)
	}

	health := client.Health(ctx)
	if health.Status != "ok" {
		t.Errorf("health = %+v", health)
	}
}

func TestNew_MissingOptions(t *testing.T) {
	ctx := context.Background()
	corpusPath, gazetteerPath := writeFixtures(t)

	if _, err := New(ctx, WithGazetteerFile(gazetteerPath)); err == nil {
		t.Error("expected error without corpus file")
	}
	if _, err := New(ctx, WithCorpusFile(corpusPath)); err == nil {
		t.Error("expected error without gazetteer file")
	}
}

func TestNew_BadFiles(t *testing.T) {
	ctx := context.Background()
	corpusPath, gazetteerPath := writeFixtures(t)

	_, err := New(ctx, WithCorpusFile("/nonexistent.json"), WithGazetteerFile(gazetteerPath))
	if !errors.Is(err, ErrCorpusUnavailable) {
		t.Errorf("err = %v, want ErrCorpusUnavailable", err)
	}

	_, err = New(ctx, WithCorpusFile(corpusPath), WithGazetteerFile("/nonexistent.yaml"))
	if !errors.Is(err, ErrCorpusUnavailable) {
		t.Errorf("err = %v, want ErrCorpusUnavailable", err)
	}
}

func TestNew_CustomWeights(t *testing.T) {
	ctx := context.Background()
	corpusPath, gazetteerPath := writeFixtures(t)

	client, err := New(ctx,
		WithCorpusFile(corpusPath),
		WithGazetteerFile(gazetteerPath),
		WithScoringWeights(ScoringWeights{Semantic: 1.0}),
		WithMaxScoredCandidates(5),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := client.Search(ctx, SearchQuery{Query: "ดอยสุเทพ"}); err != nil {
		t.Fatalf("Search: %v", err)
	}
}
