package tablestore

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

// TableNames is the fixed set of datasets one aggregation run may
// consult. A deployment ships whatever subset it has; absent files
// become empty tables rather than errors.
var TableNames = []string{
	"award_winners",
	"host_countries",
	"players",
	"substitutions",
	"awards",
	"manager_appearances",
	"qualified_teams",
	"team_appearances",
	"bookings",
	"manager_appointments",
	"referee_appearances",
	"teams",
	"confederations",
	"managers",
	"referee_appointments",
	"tournament_stages",
	"goals",
	"matches",
	"referees",
	"tournament_standings",
	"group_standings",
	"penalty_kicks",
	"squads",
	"tournaments",
	"groups",
	"player_appearances",
	"stadiums",
	"fifa_mens_rankings",
	"fifa_womens_rankings",
	"temperatures_partitioned",
}

// Dataset is one immutable snapshot of all loaded tables. Lookups for
// names outside the loaded set return an empty table, so downstream
// joins never have to distinguish "absent" from "empty".
type Dataset struct {
	tables map[string]Table
}

func NewDataset(tables map[string]Table) Dataset {
	if tables == nil {
		tables = make(map[string]Table)
	}
	return Dataset{tables: tables}
}

func (d Dataset) Table(name string) Table {
	if t, ok := d.tables[name]; ok {
		return t
	}
	return Table{name: name}
}

func (d Dataset) Len() int { return len(d.tables) }

const loadWorkers = 8

// Load reads every known table from dir. A missing file yields an
// empty table; a present file that fails to parse is an error, since
// corrupt input is not the same thing as absent input.
func Load(dir string) (Dataset, error) {
	tables := make(map[string]Table, len(TableNames))
	var mu sync.Mutex

	p := pool.New().WithErrors().WithMaxGoroutines(loadWorkers)
	for _, name := range TableNames {
		name := name
		p.Go(func() error {
			path := filepath.Join(dir, name+".csv")
			table, err := loadFile(name, path)
			if err != nil {
				return err
			}
			mu.Lock()
			tables[name] = table
			mu.Unlock()
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return Dataset{}, err
	}

	return NewDataset(tables), nil
}

func loadFile(name, path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewTable(name, nil, nil), nil
		}
		return Table{}, fmt.Errorf("open table %s: %w", name, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("parse table %s: %w", name, err)
	}
	if len(records) == 0 {
		return NewTable(name, nil, nil), nil
	}

	return NewTable(name, records[0], records[1:]), nil
}
