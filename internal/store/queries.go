package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blackwell-systems/rulemine/internal/miner"
)

// Dataset operations

// SaveDataset stores a dataset under the given name, replacing any existing
// dataset with that name along with its records and runs.
func (s *Store) SaveDataset(name, format string, records []string) (*Dataset, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, wrapQueryError(err, "failed to begin dataset save")
	}
	defer tx.Rollback()

	// Replacing by name cascades to records and runs.
	if _, err := tx.Exec(`DELETE FROM datasets WHERE name = ?`, name); err != nil {
		return nil, wrapQueryError(err, fmt.Sprintf("failed to replace dataset %s", name))
	}

	createdAt := time.Now()
	result, err := tx.Exec(
		`INSERT INTO datasets (name, format, created_at) VALUES (?, ?, ?)`,
		name, format, createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, wrapQueryError(err, fmt.Sprintf("failed to insert dataset %s", name))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset id: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO records (dataset_id, position, content) VALUES (?, ?, ?)`)
	if err != nil {
		return nil, wrapQueryError(err, "failed to prepare record insert")
	}
	defer stmt.Close()

	for i, record := range records {
		if _, err := stmt.Exec(id, i, record); err != nil {
			return nil, fmt.Errorf("failed to insert record %d of dataset %s: %w", i, name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit dataset %s: %w", name, err)
	}

	return &Dataset{
		ID:          id,
		Name:        name,
		Format:      format,
		CreatedAt:   createdAt,
		RecordCount: len(records),
	}, nil
}

// GetDataset retrieves a dataset by name.
func (s *Store) GetDataset(name string) (*Dataset, error) {
	query := `
		SELECT d.id, d.name, d.format, d.created_at,
		       (SELECT COUNT(*) FROM records r WHERE r.dataset_id = d.id)
		FROM datasets d
		WHERE d.name = ?
	`

	var ds Dataset
	var createdAt string
	err := s.db.QueryRow(query, name).Scan(&ds.ID, &ds.Name, &ds.Format, &createdAt, &ds.RecordCount)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("dataset %s not found", name)
	}
	if err != nil {
		return nil, wrapQueryError(err, fmt.Sprintf("failed to get dataset %s", name))
	}

	ds.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for %s: %w", name, err)
	}

	return &ds, nil
}

// ListDatasets returns all datasets ordered by name.
func (s *Store) ListDatasets() ([]*Dataset, error) {
	query := `
		SELECT d.id, d.name, d.format, d.created_at,
		       (SELECT COUNT(*) FROM records r WHERE r.dataset_id = d.id)
		FROM datasets d
		ORDER BY d.name
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, wrapQueryError(err, "failed to list datasets")
	}
	defer rows.Close()

	var datasets []*Dataset
	for rows.Next() {
		var ds Dataset
		var createdAt string
		if err := rows.Scan(&ds.ID, &ds.Name, &ds.Format, &createdAt, &ds.RecordCount); err != nil {
			return nil, fmt.Errorf("failed to scan dataset row: %w", err)
		}
		ds.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for %s: %w", ds.Name, err)
		}
		datasets = append(datasets, &ds)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating datasets: %w", err)
	}

	return datasets, nil
}

// GetRecords returns a dataset's records in insertion order.
func (s *Store) GetRecords(datasetID int64) ([]string, error) {
	query := `SELECT content FROM records WHERE dataset_id = ? ORDER BY position`

	rows, err := s.db.Query(query, datasetID)
	if err != nil {
		return nil, wrapQueryError(err, fmt.Sprintf("failed to get records for dataset %d", datasetID))
	}
	defer rows.Close()

	var records []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		records = append(records, content)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}

	return records, nil
}

// DeleteDataset removes a dataset, its records, and its runs.
func (s *Store) DeleteDataset(name string) error {
	result, err := s.db.Exec(`DELETE FROM datasets WHERE name = ?`, name)
	if err != nil {
		return wrapQueryError(err, fmt.Sprintf("failed to delete dataset %s", name))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("dataset %s not found", name)
	}

	return nil
}

// Run operations

// SaveRun stores a mining run and its ranked rules for a dataset. Rule order
// is preserved via the position column.
func (s *Store) SaveRun(datasetID int64, opts miner.Options, rules []miner.Rule) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, wrapQueryError(err, "failed to begin run save")
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO runs (dataset_id, created_at, min_support, min_confidence, min_size, max_size, rule_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		datasetID,
		time.Now().Format(time.RFC3339),
		opts.MinSupport,
		opts.MinConfidence,
		opts.MinSize,
		opts.MaxSize,
		len(rules),
	)
	if err != nil {
		return 0, wrapQueryError(err, "failed to insert run")
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO rules (run_id, position, antecedent, consequent, support, confidence, lift)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, wrapQueryError(err, "failed to prepare rule insert")
	}
	defer stmt.Close()

	for i, rule := range rules {
		antecedent, err := json.Marshal(rule.Antecedent)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal antecedent of rule %d: %w", i, err)
		}
		consequent, err := json.Marshal(rule.Consequent)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal consequent of rule %d: %w", i, err)
		}

		_, err = stmt.Exec(runID, i, string(antecedent), string(consequent),
			rule.Support, rule.Confidence, rule.Lift)
		if err != nil {
			return 0, fmt.Errorf("failed to insert rule %d of run %d: %w", i, runID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// GetRun retrieves a run by id.
func (s *Store) GetRun(id int64) (*Run, error) {
	query := `
		SELECT r.id, r.dataset_id, d.name, r.created_at,
		       r.min_support, r.min_confidence, r.min_size, r.max_size, r.rule_count
		FROM runs r
		JOIN datasets d ON d.id = r.dataset_id
		WHERE r.id = ?
	`

	var run Run
	var createdAt string
	err := s.db.QueryRow(query, id).Scan(
		&run.ID, &run.DatasetID, &run.DatasetName, &createdAt,
		&run.MinSupport, &run.MinConfidence, &run.MinSize, &run.MaxSize, &run.RuleCount,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return nil, wrapQueryError(err, fmt.Sprintf("failed to get run %d", id))
	}

	run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for run %d: %w", id, err)
	}

	return &run, nil
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns() ([]*Run, error) {
	query := `
		SELECT r.id, r.dataset_id, d.name, r.created_at,
		       r.min_support, r.min_confidence, r.min_size, r.max_size, r.rule_count
		FROM runs r
		JOIN datasets d ON d.id = r.dataset_id
		ORDER BY r.id DESC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, wrapQueryError(err, "failed to list runs")
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		var createdAt string
		err := rows.Scan(
			&run.ID, &run.DatasetID, &run.DatasetName, &createdAt,
			&run.MinSupport, &run.MinConfidence, &run.MinSize, &run.MaxSize, &run.RuleCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for run %d: %w", run.ID, err)
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// GetRules returns a run's rules in their stored rank order.
func (s *Store) GetRules(runID int64) ([]miner.Rule, error) {
	query := `
		SELECT antecedent, consequent, support, confidence, lift
		FROM rules
		WHERE run_id = ?
		ORDER BY position
	`

	rows, err := s.db.Query(query, runID)
	if err != nil {
		return nil, wrapQueryError(err, fmt.Sprintf("failed to get rules for run %d", runID))
	}
	defer rows.Close()

	var rules []miner.Rule
	for rows.Next() {
		var rule miner.Rule
		var antecedent, consequent string
		if err := rows.Scan(&antecedent, &consequent, &rule.Support, &rule.Confidence, &rule.Lift); err != nil {
			return nil, fmt.Errorf("failed to scan rule row: %w", err)
		}
		if err := json.Unmarshal([]byte(antecedent), &rule.Antecedent); err != nil {
			return nil, fmt.Errorf("failed to unmarshal antecedent for run %d: %w", runID, err)
		}
		if err := json.Unmarshal([]byte(consequent), &rule.Consequent); err != nil {
			return nil, fmt.Errorf("failed to unmarshal consequent for run %d: %w", runID, err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rules: %w", err)
	}

	return rules, nil
}
