package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/model"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/validate"
	"go.uber.org/zap"
)

// ImportService adds guests in bulk, creating missing groups on the way.
type ImportService struct {
	rows RowImporter
	log  *zap.Logger
}

// NewImportService constructs an ImportService.
func NewImportService(rows RowImporter, log *zap.Logger) *ImportService {
	return &ImportService{rows: rows, log: log}
}

// Import processes rows one by one. Rows without a first name, family name
// or group code are skipped. A capacity of zero or less means the default. Each remaining row is written atomically; a
// failing row is logged and counted and does not stop the rest.
// Re-running the same input creates no new groups but does duplicate guests.
func (s *ImportService) Import(ctx context.Context, rows []model.ImportRow) model.ImportResult {
	var res model.ImportResult
	for i, row := range rows {
		row, ok := normalizeRow(row)
		if !ok {
			res.Skipped++
			continue
		}
		created, err := s.rows.ImportRow(ctx, row)
		if err != nil {
			res.Failed++
			s.log.Error("import row failed",
				zap.Int("row", i+1), zap.String("group_code", row.GroupCode), zap.Error(err))
			continue
		}
		res.Created++
		if created {
			res.GroupsCreated++
		}
	}
	s.log.Info("import finished",
		zap.Int("created", res.Created),
		zap.Int("groups_created", res.GroupsCreated),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed),
	)
	return res
}

func normalizeRow(row model.ImportRow) (model.ImportRow, bool) {
	row.FirstName = strings.TrimSpace(row.FirstName)
	row.FamilyName = strings.TrimSpace(row.FamilyName)
	row.GroupCode = strings.TrimSpace(row.GroupCode)
	if row.FirstName == "" || row.FamilyName == "" || row.GroupCode == "" {
		return row, false
	}
	row.Phone = strings.TrimSpace(row.Phone)
	row.Side = normalizeSide(row.Side)
	if row.Relation = strings.TrimSpace(row.Relation); row.Relation == "" {
		row.Relation = model.DefaultRelation
	}
	if row.MaxGuests != nil && *row.MaxGuests <= 0 {
		row.MaxGuests = nil
	}
	return row, true
}

// ─── Payload parsing ─────────────────────────────────────────────────────────

// ErrExpectedArray is returned when an import payload holds no row array.
var ErrExpectedArray = validate.Field("guests", "Expected guests array")

// ParseImportJSON accepts either a bare array of rows or {"guests": [...]}.
func ParseImportJSON(data []byte) ([]model.ImportRow, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var wrapper struct {
			Guests json.RawMessage `json:"guests"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, ErrExpectedArray
		}
		data = bytes.TrimSpace(wrapper.Guests)
	}
	if len(data) == 0 || data[0] != '[' {
		return nil, ErrExpectedArray
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, validate.Field("guests", "invalid row array: "+err.Error())
	}
	// Rows are decoded one at a time. A row that does not decode stays empty
	// and is skipped by Import like any other incomplete row.
	rows := make([]model.ImportRow, len(raw))
	for i, r := range raw {
		var row model.ImportRow
		if json.Unmarshal(r, &row) == nil {
			rows[i] = row
		}
	}
	return rows, nil
}

// csvColumns maps accepted header spellings to row fields.
var csvColumns = map[string]string{
	"firstname":   "firstName",
	"first name":  "firstName",
	"first":       "firstName",
	"familyname":  "familyName",
	"family name": "familyName",
	"family":      "familyName",
	"lastname":    "familyName",
	"last name":   "familyName",
	"phone":       "phone",
	"side":        "side",
	"relation":    "relation",
	"groupcode":   "groupCode",
	"group code":  "groupCode",
	"group":       "groupCode",
	"maxguests":   "maxGuests",
	"max guests":  "maxGuests",
}

// ParseImportCSV reads a CSV document with a header line. Unknown columns
// are ignored and a non-numeric max guests value is treated as absent.
func ParseImportCSV(r io.Reader) ([]model.ImportRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, validate.Field("csv", "is empty")
		}
		return nil, validate.Field("csv", err.Error())
	}
	index := make(map[string]int)
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if field, ok := csvColumns[h]; ok {
			if _, dup := index[field]; !dup {
				index[field] = i
			}
		}
	}
	for _, required := range []string{"firstName", "familyName", "groupCode"} {
		if _, ok := index[required]; !ok {
			return nil, validate.Field("csv", fmt.Sprintf("missing %s column", required))
		}
	}

	var rows []model.ImportRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, validate.Field("csv", err.Error())
		}
		get := func(field string) string {
			if i, ok := index[field]; ok && i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}
		row := model.ImportRow{
			FirstName:  get("firstName"),
			FamilyName: get("familyName"),
			Phone:      get("phone"),
			Side:       model.Side(get("side")),
			Relation:   get("relation"),
			GroupCode:  get("groupCode"),
		}
		if n, err := strconv.Atoi(get("maxGuests")); err == nil && n > 0 {
			row.MaxGuests = &n
		}
		rows = append(rows, row)
	}
	return rows, nil
}
