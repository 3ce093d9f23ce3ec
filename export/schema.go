package export

import "fmt"

// TableSchema maps one table's generation-time layout to its final
// relational layout: working column names are renamed to the
// destination schema's names, and generation-only join columns are
// dropped from the export.
type TableSchema struct {
	Name    string
	Source  []string
	Renames map[string]string
	Dropped map[string]bool
}

// FinalHeader returns the exported column names, in source order, with
// dropped columns removed and renames applied.
func (s TableSchema) FinalHeader() []string {
	header := make([]string, 0, len(s.Source))
	for _, col := range s.Source {
		if s.Dropped[col] {
			continue
		}
		if renamed, ok := s.Renames[col]; ok {
			col = renamed
		}
		header = append(header, col)
	}
	return header
}

// FilterRow removes the dropped columns from a row laid out in source
// order.
func (s TableSchema) FilterRow(row []string) ([]string, error) {
	if len(row) != len(s.Source) {
		return nil, fmt.Errorf("table %s: row has %d values, schema has %d columns", s.Name, len(row), len(s.Source))
	}
	filtered := make([]string, 0, len(row))
	for i, col := range s.Source {
		if s.Dropped[col] {
			continue
		}
		filtered = append(filtered, row[i])
	}
	return filtered, nil
}

// SourceColumn returns the generation-time name behind a final column.
func (s TableSchema) SourceColumn(final string) (string, bool) {
	for src, dst := range s.Renames {
		if dst == final {
			return src, true
		}
	}
	for _, col := range s.Source {
		if col == final && !s.Dropped[col] {
			return col, true
		}
	}
	return "", false
}

// Schemas returns every exported table's schema, reference catalogs
// included, in foreign key dependency order.
func Schemas() []TableSchema {
	return []TableSchema{
		{
			Name:   "branch",
			Source: []string{"branch_id", "branch_name", "city", "street_address", "opening_date"},
		},
		{
			Name:   "membership_type",
			Source: []string{"membership_type_id", "membership_type", "membership_price", "membership_duration"},
		},
		{
			Name:   "class",
			Source: []string{"class_id", "class_name", "class_type", "class_duration"},
		},
		{
			Name:   "trainers",
			Source: []string{"trainer_id", "branch_id", "first_name", "last_name", "gender", "date_of_birth", "specialisation", "join_date"},
			Renames: map[string]string{
				"first_name":    "trainer_first_name",
				"last_name":     "trainer_last_name",
				"gender":        "trainer_gender",
				"date_of_birth": "trainer_date_of_birth",
				"join_date":     "trainer_join_date",
			},
		},
		{
			Name:   "members",
			Source: []string{"member_id", "branch_id", "first_name", "last_name", "date_of_birth", "gender", "email", "phone", "join_date"},
			Renames: map[string]string{
				"first_name":    "member_first_name",
				"last_name":     "member_last_name",
				"date_of_birth": "member_date_of_birth",
				"gender":        "member_gender",
				"join_date":     "member_join_date",
			},
		},
		{
			Name:   "memberships",
			Source: []string{"payment_id", "member_id", "membership_type_id", "branch_id", "start_date", "end_date", "payment_date", "payment_amount", "payment_method", "duration_days"},
			Renames: map[string]string{
				"payment_id": "membership_id",
				"start_date": "membership_start_date",
				"end_date":   "membership_end_date",
			},
			Dropped: map[string]bool{"branch_id": true, "duration_days": true},
		},
		{
			Name:   "checkins",
			Source: []string{"check_in_id", "member_id", "branch_id", "check_in_time", "check_out_time", "overall_rating"},
			Renames: map[string]string{
				"check_in_id":    "checkin_id",
				"check_in_time":  "checkin_stamp",
				"check_out_time": "checkout_stamp",
				"overall_rating": "visit_rating",
			},
			Dropped: map[string]bool{"branch_id": true},
		},
		{
			Name:   "class_sessions",
			Source: []string{"session_id", "class_id", "trainer_id", "branch_id", "session_date", "start_time", "end_time", "capacity", "status"},
			Renames: map[string]string{
				"capacity": "max_capacity",
			},
			Dropped: map[string]bool{"branch_id": true, "session_date": true},
		},
		{
			Name:   "class_attendance",
			Source: []string{"member_id", "session_id", "rating"},
			Renames: map[string]string{
				"rating": "class_rating",
			},
		},
	}
}

// SchemaFor looks a table's schema up by name.
func SchemaFor(name string) (TableSchema, bool) {
	for _, s := range Schemas() {
		if s.Name == name {
			return s, true
		}
	}
	return TableSchema{}, false
}
