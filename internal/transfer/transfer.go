package transfer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/internal/scheduler"
	"github.com/julianstephens/tempo/internal/storage"
	"github.com/julianstephens/tempo/internal/utils"
)

const FormatVersion = 1

var ErrUnsupportedVersion = errors.New("unsupported export format version")

// Document is the YAML layout of an export. Soft-deleted records are not part of it.
type Document struct {
	Version           int                       `yaml:"version"`
	ExportedAt        time.Time                 `yaml:"exported_at"`
	TimeConfiguration *models.TimeConfiguration `yaml:"time_configuration,omitempty"`
	Contexts          []models.Context          `yaml:"contexts"`
	Tasks             []models.Task             `yaml:"tasks"`
}

type Summary struct {
	TimeConfiguration bool
	Contexts          int
	Tasks             int
	Skipped           int
}

func (s Summary) String() string {
	cfg := "kept"
	if s.TimeConfiguration {
		cfg = "replaced"
	}
	return fmt.Sprintf("%d contexts, %d tasks, %d skipped, time configuration %s", s.Contexts, s.Tasks, s.Skipped, cfg)
}

type ImportOptions struct {
	// Overwrite replaces records whose ID already exists instead of skipping them
	Overwrite bool
	// SkipTimeConfiguration leaves the stored time configuration untouched
	SkipTimeConfiguration bool
}

func Build(store storage.Provider, now time.Time) (Document, error) {
	cfg, err := store.GetTimeConfiguration()
	if err != nil {
		return Document{}, fmt.Errorf("failed to read time configuration: %w", err)
	}
	contexts, err := store.GetAllContexts()
	if err != nil {
		return Document{}, fmt.Errorf("failed to read contexts: %w", err)
	}
	tasks, err := store.GetAllTasks()
	if err != nil {
		return Document{}, fmt.Errorf("failed to read tasks: %w", err)
	}

	doc := Document{
		Version:           FormatVersion,
		ExportedAt:        now.UTC().Truncate(time.Second),
		TimeConfiguration: &cfg,
		Contexts:          contexts,
		Tasks:             tasks,
	}
	if doc.Contexts == nil {
		doc.Contexts = []models.Context{}
	}
	if doc.Tasks == nil {
		doc.Tasks = []models.Task{}
	}
	// Links to deleted contexts are dropped since those contexts are not exported
	for i := range doc.Tasks {
		live := []string{}
		for _, c := range doc.Tasks[i].Contexts {
			live = append(live, c.ID)
		}
		doc.Tasks[i].ContextIDs = live
	}
	return doc, nil
}

func Write(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return enc.Close()
}

func Read(r io.Reader) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, errors.New("import file is empty")
		}
		return Document{}, fmt.Errorf("failed to decode import file: %w", err)
	}
	if doc.Version != FormatVersion {
		return Document{}, fmt.Errorf("%w: %d (expected %d)", ErrUnsupportedVersion, doc.Version, FormatVersion)
	}
	return doc, nil
}

// Import validates the whole document before writing anything, then saves
// the time configuration, contexts and tasks in that order.
func Import(store storage.Provider, doc Document, opts ImportOptions, now time.Time) (Summary, error) {
	if err := prepare(store, &doc, now); err != nil {
		return Summary{}, err
	}

	var sum Summary
	if doc.TimeConfiguration != nil && !opts.SkipTimeConfiguration {
		if err := store.SaveTimeConfiguration(*doc.TimeConfiguration); err != nil {
			return sum, fmt.Errorf("failed to save time configuration: %w", err)
		}
		sum.TimeConfiguration = true
	}

	for _, c := range doc.Contexts {
		_, err := store.GetContext(c.ID)
		switch {
		case err == nil && !opts.Overwrite:
			sum.Skipped++
			continue
		case err == nil:
			err = store.UpdateContext(c)
		case errors.Is(err, storage.ErrNotFound):
			err = store.AddContext(c)
		}
		if err != nil {
			return sum, fmt.Errorf("failed to import context %q: %w", c.Name, err)
		}
		sum.Contexts++
	}

	for _, t := range doc.Tasks {
		_, err := store.GetTask(t.ID)
		switch {
		case err == nil && !opts.Overwrite:
			sum.Skipped++
			continue
		case err == nil:
			err = store.UpdateTask(t)
		case errors.Is(err, storage.ErrNotFound):
			err = store.AddTask(t)
		}
		if err != nil {
			return sum, fmt.Errorf("failed to import task %q: %w", t.Title, err)
		}
		sum.Tasks++
	}

	return sum, nil
}

// prepare fills defaults and rejects documents that would leave the store inconsistent
func prepare(store storage.Provider, doc *Document, now time.Time) error {
	if cfg := doc.TimeConfiguration; cfg != nil {
		if err := scheduler.ValidateConfiguration(*cfg); err != nil {
			return err
		}
		if !utils.ValidateTimezone(cfg.Timezone) {
			return fmt.Errorf("%w: unknown timezone %q", scheduler.ErrInvalidConfiguration, cfg.Timezone)
		}
	}

	known := make(map[string]bool)
	names := make(map[string]string)
	for i := range doc.Contexts {
		c := &doc.Contexts[i]
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		c.DeletedAt = nil
		if err := c.Validate(); err != nil {
			return fmt.Errorf("context %q: %w", c.Name, err)
		}
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if other, dup := names[key]; dup && other != c.ID {
			return fmt.Errorf("context name %q appears more than once", c.Name)
		}
		names[key] = c.ID
		known[c.ID] = true
	}

	for i := range doc.Tasks {
		t := &doc.Tasks[i]
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if t.Status == "" {
			t.Status = constants.StatusInbox
		}
		if t.Priority == 0 {
			t.Priority = constants.PriorityMedium
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now.UTC()
		}
		t.DeletedAt = nil
		t.Contexts = nil
		if err := t.Validate(); err != nil {
			return fmt.Errorf("task %q: %w", t.Title, err)
		}
		for _, id := range t.ContextIDs {
			if known[id] {
				continue
			}
			if _, err := store.GetContext(id); err != nil {
				return fmt.Errorf("task %q references unknown context %s", t.Title, id)
			}
			known[id] = true
		}
	}
	return nil
}
