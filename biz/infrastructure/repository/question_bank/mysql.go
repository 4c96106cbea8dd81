package question_bank

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/util/log"

	_ "github.com/go-sql-driver/mysql"
)

// Question is a row of the quiz_questions table.
type Question struct {
	ID            int64
	Topic         string
	Difficulty    string
	Question      string
	Type          consts.QuestionType
	Options       []string
	CorrectAnswer string
}

type IMySQLMapper interface {
	FindByTopic(ctx context.Context, topic, difficulty string, limit int) ([]*Question, error)
	Close() error
}

type MySQLMapper struct {
	db *sql.DB
}

func NewMySQLMapper(dsn string) (*MySQLMapper, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping mysql: %w", err)
	}

	log.Info("MySQL connection established successfully")
	return &MySQLMapper{db: db}, nil
}

func (m *MySQLMapper) Close() error {
	return m.db.Close()
}

// FindByTopic matches topic case-insensitively. An empty difficulty matches any.
func (m *MySQLMapper) FindByTopic(ctx context.Context, topic, difficulty string, limit int) ([]*Question, error) {
	conditions := []string{"LOWER(topic) = ?"}
	args := []any{strings.ToLower(strings.TrimSpace(topic))}
	if difficulty != "" {
		conditions = append(conditions, "difficulty = ?")
		args = append(args, difficulty)
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT id, topic, difficulty, question, type, options, correct_answer
		FROM quiz_questions WHERE %s
		ORDER BY RAND()
		LIMIT ?
	`, strings.Join(conditions, " AND "))

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("Failed to query quiz questions: %v", err)
		return nil, fmt.Errorf("failed to query quiz questions: %w", err)
	}
	defer rows.Close()

	var questions []*Question
	for rows.Next() {
		var (
			q       Question
			qType   string
			options sql.NullString
		)
		if err := rows.Scan(&q.ID, &q.Topic, &q.Difficulty, &q.Question, &qType, &options, &q.CorrectAnswer); err != nil {
			log.Error("Failed to scan quiz question row: %v", err)
			continue
		}
		q.Type = consts.QuestionType(qType)
		q.Options = parseOptions(options)
		questions = append(questions, &q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return questions, nil
}

// options are stored as a JSON array of strings
func parseOptions(s sql.NullString) []string {
	if !s.Valid || s.String == "" {
		return []string{}
	}
	var options []string
	if err := json.Unmarshal([]byte(s.String), &options); err != nil {
		log.Error("Failed to decode quiz options %q: %v", s.String, err)
		return []string{}
	}
	return options
}

// NoopMapper serves an empty bank when MySQL is not configured.
type NoopMapper struct{}

func (NoopMapper) FindByTopic(context.Context, string, string, int) ([]*Question, error) {
	return nil, nil
}

func (NoopMapper) Close() error { return nil }
