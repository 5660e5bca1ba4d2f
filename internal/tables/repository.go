package tables

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/cadpayroll/engine/internal/domain"
	"github.com/cadpayroll/engine/internal/engineerr"
)

//go:embed testdata/*.json
var embeddedTables embed.FS

// editionFileTag maps an edition to the short numeric tag used in its rate
// table filenames (e.g. federal_2025_121.json).
func editionFileTag(edition domain.TaxEdition) (string, error) {
	switch edition {
	case domain.Edition120:
		return "120", nil
	case domain.Edition121:
		return "121", nil
	default:
		return "", engineerr.Newf(engineerr.UnknownEdition, "unrecognized edition %q", edition)
	}
}

// cacheKey identifies one loaded TaxTables bundle.
type cacheKey struct {
	year    int
	edition domain.TaxEdition
}

// Repository is the read-through, at-most-once-per-key tax-table loader
// (component C2). It is the sole path to table rate data; calculators never
// construct a Bracket or cap literal themselves.
//
// The cache publishes fully-initialised *TaxTables by pointer; concurrent
// first-touch on the same key blocks on a single load via sync.Once rather
// than racing, and readers of an already-cached entry only hold the
// repository mutex for the brief map lookups.
type Repository struct {
	fsys embed.FS
	mu   sync.Mutex
	once map[cacheKey]*sync.Once
	data map[cacheKey]*TaxTables
	errs map[cacheKey]error
}

// NewRepository constructs a Repository reading from the engine's embedded
// rate-table files. Tests that need to inject fixtures construct a
// Repository with NewRepositoryFS against an alternate embed.FS rather than
// replacing any package-level global.
func NewRepository() *Repository {
	return NewRepositoryFS(embeddedTables)
}

// NewRepositoryFS constructs a Repository reading from an alternate
// embedded filesystem of the same shape as testdata/, for tests.
func NewRepositoryFS(fsys embed.FS) *Repository {
	return &Repository{
		fsys: fsys,
		once: make(map[cacheKey]*sync.Once),
		data: make(map[cacheKey]*TaxTables),
		errs: make(map[cacheKey]error),
	}
}

// Load returns the TaxTables bundle for (year, edition), loading and
// validating it on first touch and serving the cached pointer thereafter.
func (r *Repository) Load(year int, edition domain.TaxEdition) (*TaxTables, error) {
	key := cacheKey{year: year, edition: edition}

	r.mu.Lock()
	once, ok := r.once[key]
	if !ok {
		once = &sync.Once{}
		r.once[key] = once
	}
	r.mu.Unlock()

	once.Do(func() {
		tbl, err := r.loadFromDisk(year, edition)
		r.mu.Lock()
		if err != nil {
			r.errs[key] = err
		} else {
			r.data[key] = tbl
		}
		r.mu.Unlock()
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.errs[key]; ok {
		return nil, err
	}
	return r.data[key], nil
}

// LoadFederal is a narrow accessor for callers that only need the federal
// table (e.g. the edition-agnostic CPP/EI constants consumer).
func (r *Repository) LoadFederal(year int, edition domain.TaxEdition) (*FederalTables, error) {
	t, err := r.Load(year, edition)
	if err != nil {
		return nil, err
	}
	return &t.Federal, nil
}

func (r *Repository) loadFromDisk(year int, edition domain.TaxEdition) (*TaxTables, error) {
	tag, err := editionFileTag(edition)
	if err != nil {
		return nil, err
	}

	var federal FederalTables
	federalPath := fmt.Sprintf("testdata/federal_%d_%s.json", year, tag)
	if err := readJSON(r.fsys, federalPath, &federal); err != nil {
		return nil, engineerr.Newf(engineerr.MissingTaxTable, "federal table %s: %v", federalPath, err).WithField("path", federalPath)
	}

	var cppEi CppEiTables
	cppEiPath := fmt.Sprintf("testdata/cpp_ei_%d.json", year)
	if err := readJSON(r.fsys, cppEiPath, &cppEi); err != nil {
		return nil, engineerr.Newf(engineerr.MissingTaxTable, "cpp/ei table %s: %v", cppEiPath, err).WithField("path", cppEiPath)
	}

	var raw map[domain.Jurisdiction]ProvincialEntry
	provincialPath := fmt.Sprintf("testdata/provinces_%d_%s.json", year, tag)
	if err := readJSON(r.fsys, provincialPath, &raw); err != nil {
		return nil, engineerr.Newf(engineerr.MissingTaxTable, "provincial table %s: %v", provincialPath, err).WithField("path", provincialPath)
	}

	tables := &TaxTables{
		Year:       year,
		Edition:    edition,
		Federal:    federal,
		CppEi:      cppEi,
		Provincial: ProvincialTables(raw),
	}

	if err := Validate(tables); err != nil {
		return nil, err
	}
	return tables, nil
}

func readJSON(fsys embed.FS, path string, out any) error {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
