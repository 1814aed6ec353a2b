package kifu

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// MoveText is one move of a game record in both machine and human form.
type MoveText struct {
	Ply  int32  `parquet:"name=ply, type=INT32"`
	USI  string `parquet:"name=usi, type=BYTE_ARRAY, convertedtype=UTF8"`
	Kifu string `parquet:"name=kifu, type=BYTE_ARRAY, convertedtype=UTF8"`
}

type GameRecord struct {
	GameID    string     `parquet:"name=game_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	SenteName string     `parquet:"name=sente_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	GoteName  string     `parquet:"name=gote_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Result    string     `parquet:"name=result, type=BYTE_ARRAY, convertedtype=UTF8"`
	MoveCount int32      `parquet:"name=move_count, type=INT32"`
	Moves     []MoveText `parquet:"name=moves, type=LIST"`
}

type ParquetSchema struct {
	Name   string         `json:"name"`
	Fields []ParquetField `json:"fields"`
}

type ParquetField struct {
	Name     string      `json:"name"`
	Type     interface{} `json:"type"`
	Nullable bool        `json:"nullable"`
}

const schemaPath = "schema/parquet_schema.json"

// BuildGameRecord replays usiMoves from start and renders kifu notation
// for each move. start is not modified.
func BuildGameRecord(gameID string, start *Position, usiMoves []string, style NumeralStyle) (GameRecord, error) {
	record := GameRecord{
		GameID:    gameID,
		MoveCount: int32(len(usiMoves)),
		Moves:     make([]MoveText, 0, len(usiMoves)),
	}
	pos := start.Clone()
	for i, usi := range usiMoves {
		m, err := ParseUSIMove(usi)
		if err != nil {
			return GameRecord{}, fmt.Errorf("move %d: %w", i+1, err)
		}
		if err := checkMove(pos, m); err != nil {
			return GameRecord{}, fmt.Errorf("move %d: %w", i+1, err)
		}
		var b strings.Builder
		if err := WriteMove(pos, m, style, &b); err != nil {
			return GameRecord{}, fmt.Errorf("move %d: %w", i+1, err)
		}
		record.Moves = append(record.Moves, MoveText{
			Ply:  int32(i + 1),
			USI:  usi,
			Kifu: b.String(),
		})
		if err := pos.MakeMove(m); err != nil {
			return GameRecord{}, fmt.Errorf("move %d: %w", i+1, err)
		}
	}
	return record, nil
}

// checkMove rejects moves that break basic movement rules before they
// reach the notation layer, which assumes movable input.
func checkMove(pos *Position, m Move) error {
	side := pos.SideToMove()
	if m.IsDrop {
		if !CanDrop(pos, side, m.Kind, m.To) {
			return fmt.Errorf("%w: cannot drop %s on %s", ErrInvalidMove, m.Kind.Kanji(), m.To)
		}
		return nil
	}
	piece := pos.PieceAt(m.From)
	if piece.IsEmpty() {
		return fmt.Errorf("%w: %s", ErrNoPieceAtOrigin, m.From)
	}
	if piece.Color() != side {
		return fmt.Errorf("%w: %s is not a piece to move", ErrInvalidMove, m.From)
	}
	if !CanReach(pos, piece, m.From, m.To, m.Promote) {
		return fmt.Errorf("%w: %s cannot reach %s", ErrInvalidMove, m.From, m.To)
	}
	return nil
}

// WriteParquet drains records into a SNAPPY-compressed parquet file.
// The struct tags are cross-checked against the JSON schema file so the
// two cannot drift apart silently.
func WriteParquet(path string, records <-chan GameRecord, parallel int64) error {
	log.Info().Str("path", path).Msg("writing parquet")

	schema, err := loadParquetSchema(schemaPath)
	if err != nil {
		return err
	}
	if err := validateSchema(schema, GameRecord{}); err != nil {
		return err
	}

	fileWriter, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	defer fileWriter.Close()

	parquetWriter, err := writer.NewParquetWriter(fileWriter, new(GameRecord), parallel)
	if err != nil {
		return err
	}
	parquetWriter.CompressionType = parquet.CompressionCodec_SNAPPY

	count := 0
	for record := range records {
		if err := parquetWriter.Write(record); err != nil {
			return err
		}
		count++
	}
	if err := parquetWriter.WriteStop(); err != nil {
		return err
	}
	log.Info().Int("games", count).Msg("parquet done")
	return fileWriter.Close()
}

func loadParquetSchema(path string) (ParquetSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ParquetSchema{}, err
	}
	var schema ParquetSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return ParquetSchema{}, err
	}
	return schema, nil
}

func validateSchema(schema ParquetSchema, sample any) error {
	schemaFields := make(map[string]struct{}, len(schema.Fields))
	for _, field := range schema.Fields {
		schemaFields[field.Name] = struct{}{}
	}
	structFields := structParquetFieldNames(sample)
	missing := diffKeys(schemaFields, structFields)
	extra := diffKeys(structFields, schemaFields)
	if len(missing) > 0 || len(extra) > 0 {
		return fmt.Errorf("parquet schema mismatch: missing=%v extra=%v", missing, extra)
	}
	return nil
}

func structParquetFieldNames(sample any) map[string]struct{} {
	fields := map[string]struct{}{}
	v := reflect.TypeOf(sample)
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		name := parseParquetName(field.Tag.Get("parquet"))
		if name != "" {
			fields[name] = struct{}{}
		}
	}
	return fields
}

func parseParquetName(tag string) string {
	if tag == "" {
		return ""
	}
	parts := strings.Split(tag, ",")
	for _, part := range parts {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) == 2 && kv[0] == "name" {
			return kv[1]
		}
	}
	return ""
}

func diffKeys(a, b map[string]struct{}) []string {
	var diff []string
	for key := range a {
		if _, ok := b[key]; !ok {
			diff = append(diff, key)
		}
	}
	return diff
}
