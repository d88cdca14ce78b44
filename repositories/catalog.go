package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"stageshow/domain"
)

var validate = validator.New()

// Catalog is the immutable in-memory pack collection. It is built once at
// startup; all read paths after that are lock-free because nothing mutates it.
type Catalog struct {
	ordered []domain.Pack
	byID    map[string]domain.Pack
}

// LoadCatalog reads every *.json file under packsDir as one pack. A
// structurally invalid pack (missing id, missing question sequence) is fatal:
// the process must refuse to serve rather than run with a partially valid
// catalog. Files are consumed in sorted name order, which fixes the default
// pack across restarts.
//
// mediaDir may be empty; when set, question media references are probed with
// mimetype so displays receive the detected content type alongside the path.
func LoadCatalog(packsDir, mediaDir string, log *slog.Logger) (*Catalog, error) {
	entries, err := os.ReadDir(packsDir)
	if err != nil {
		return nil, fmt.Errorf("reading packs directory %s: %w", packsDir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	catalog := &Catalog{byID: make(map[string]domain.Pack)}
	for _, name := range files {
		path := filepath.Join(packsDir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading pack %s: %w", path, err)
		}

		var pack domain.Pack
		if err := json.Unmarshal(raw, &pack); err != nil {
			return nil, fmt.Errorf("parsing pack %s: %w", path, err)
		}
		if err := validate.Struct(pack); err != nil {
			return nil, fmt.Errorf("invalid pack %s: %w", path, err)
		}
		if _, dup := catalog.byID[pack.ID]; dup {
			return nil, fmt.Errorf("duplicate pack id %q in %s", pack.ID, path)
		}

		if mediaDir != "" {
			probeMedia(&pack, mediaDir, log)
		}

		catalog.ordered = append(catalog.ordered, pack)
		catalog.byID[pack.ID] = pack
		log.Info("Loaded pack", "id", pack.ID, "title", pack.Title, "questions", len(pack.Questions))
	}

	log.Info("Catalog ready", "packs", len(catalog.ordered))
	return catalog, nil
}

// probeMedia fills in the content type of each question's media reference.
// A missing or unreadable file is only a warning: the show can still run,
// the display just falls back to extension sniffing.
func probeMedia(pack *domain.Pack, mediaDir string, log *slog.Logger) {
	for i := range pack.Questions {
		question := &pack.Questions[i]
		if question.Media == "" {
			continue
		}
		mtype, err := mimetype.DetectFile(filepath.Join(mediaDir, question.Media))
		if err != nil {
			log.Warn("Cannot probe question media",
				"pack", pack.ID, "question", i, "media", question.Media, "error", err)
			continue
		}
		question.MediaType = mtype.String()
	}
}

func (c *Catalog) Get(id string) (domain.Pack, bool) {
	pack, ok := c.byID[id]
	return pack, ok
}

func (c *Catalog) FirstPackID() string {
	if len(c.ordered) == 0 {
		return ""
	}
	return c.ordered[0].ID
}

func (c *Catalog) Summaries() []domain.PackSummary {
	return lo.Map(c.ordered, func(pack domain.Pack, _ int) domain.PackSummary {
		return domain.PackSummary{
			ID:    pack.ID,
			Title: pack.Title,
			Type:  pack.Type,
			Count: len(pack.Questions),
		}
	})
}

func (c *Catalog) Packs() []domain.Pack {
	return c.ordered
}
