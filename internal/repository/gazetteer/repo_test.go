package gazetteer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/painaidee/discovery/internal/domain"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gazetteer.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

const fixtureYAML = `
expansions:
  "Chiang Mai":
    popular_places:
      - "ดอยสุเทพ"
      - "นิมมาน"
    common_tags:
      - "เชียงใหม่"
    aliases:
      - "เชียงใหม่"
      - "CNX"
    nearby_provinces:
      - "Lamphun"
  "Krabi":
    popular_places:
      - "เกาะพีพี"
    aliases:
      - "กระบี่"
`

func TestLoad(t *testing.T) {
	m, err := Load(writeFixture(t, fixtureYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m) != 2 {
		t.Fatalf("entries = %d, want 2", len(m))
	}

	cm, ok := m["Chiang Mai"]
	if !ok {
		t.Fatal("Chiang Mai entry missing")
	}
	if len(cm.PopularPlaces) != 2 || cm.PopularPlaces[0] != "ดอยสุเทพ" {
		t.Errorf("popular places = %v", cm.PopularPlaces)
	}
	if len(cm.Aliases) != 2 || cm.Aliases[1] != "CNX" {
		t.Errorf("aliases = %v", cm.Aliases)
	}
	if len(cm.NearbyProvinces) != 1 || cm.NearbyProvinces[0] != "Lamphun" {
		t.Errorf("nearby provinces = %v", cm.NearbyProvinces)
	}

	kb := m["Krabi"]
	if len(kb.CommonTags) != 0 {
		t.Errorf("omitted common_tags = %v, want empty", kb.CommonTags)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, domain.ErrCorpusUnavailable) {
		t.Errorf("expected ErrCorpusUnavailable, got %v", err)
	}
}

func TestLoad_EmptyExpansionsFatal(t *testing.T) {
	_, err := Load(writeFixture(t, "expansions: {}\n"))
	if !errors.Is(err, domain.ErrCorpusUnavailable) {
		t.Errorf("expected ErrCorpusUnavailable, got %v", err)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeFixture(t, "expansions:\n  - [broken"))
	if !errors.Is(err, domain.ErrCorpusUnavailable) {
		t.Errorf("expected ErrCorpusUnavailable, got %v", err)
	}
}
