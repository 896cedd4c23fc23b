package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kai-Rice/study-log/internal/config"
	"github.com/Kai-Rice/study-log/internal/database"
	"github.com/Kai-Rice/study-log/internal/store"
)

// NewQueryCommand creates the 'query' subcommand for SQL over exported data
// Usage: study-log query [--db study_log.db] [--sql "SELECT ..."]
func NewQueryCommand() *cobra.Command {
	var dbFile string
	var sqlQuery string
	var format string

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run read-only SQL against the exported database",
		Long: `Execute SQL against the SQLite database written by 'export'. Provide a
query via --sql, or omit it to enter interactive mode.

Only read-only statements are allowed (SELECT, WITH, EXPLAIN, and
introspection PRAGMAs); write operations are rejected.

Example queries:
  SELECT SUM(minutes) FROM study;
  SELECT date, minutes FROM study WHERE minutes > 30 ORDER BY date;

Interactive mode:
  study-log query`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.OutOrStdout(), dbFile, sqlQuery, format)
		},
	}

	cmd.Flags().StringVarP(&dbFile, "db", "d", "", config.DatabaseDescription+" (default from config)")
	cmd.Flags().StringVarP(&sqlQuery, "sql", "s", "", "SQL query to execute (omit for interactive mode)")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table or csv")

	return cmd
}

func runQuery(w io.Writer, dbFile, sqlQuery, format string) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}
	if dbFile == "" {
		dbFile = env.cfg.DatabaseFile
	}

	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		return &store.StorageError{Path: dbFile, Err: fmt.Errorf("database does not exist, run 'export' first")}
	}

	db, err := database.Initialize(dbFile)
	if err != nil {
		return err
	}
	defer db.Close()

	if sqlQuery != "" {
		return executeQuery(w, db, sqlQuery, format)
	}

	return interactiveQuery(w, db, dbFile, format)
}

func executeQuery(w io.Writer, db database.DB, query, format string) error {
	if err := ValidateReadOnlyQuery(query); err != nil {
		return err
	}

	columns, results, err := database.ExecuteQuery(db, query)
	if err != nil {
		return err
	}

	return renderRecords(w, columns, resultsToRecords(columns, results), format)
}

// interactiveQuery reads queries from stdin until exit/quit.
func interactiveQuery(w io.Writer, db database.DB, dbFile, format string) error {
	fmt.Fprintf(w, "Connected to %s. Read-only SQL; type 'exit' or 'quit' to leave.\n", dbFile)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(w, "sql> ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "exit" || input == "quit" {
			break
		}
		if input == "" {
			continue
		}

		if err := executeQuery(w, db, input, format); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
		}
		fmt.Fprintln(w)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return nil
}

// write operations that must never reach the exported database
var forbiddenKeywords = []string{
	"insert", "update", "delete", "drop", "create", "alter",
	"truncate", "replace", "attach", "detach", "vacuum", "reindex",
	"begin", "commit", "rollback", "savepoint",
}

var sqlComments = regexp.MustCompile(`--.*|/\*.*?\*/`)

// introspection pragmas that cannot modify the database
var readOnlyPragmas = []string{
	"pragma table_info(",
	"pragma index_list(",
	"pragma index_info(",
	"pragma foreign_key_list(",
	"pragma schema_version",
	"pragma user_version",
	"pragma database_list",
	"pragma compile_options",
}

// ValidateReadOnlyQuery ensures a query only reads: it must start with
// SELECT, WITH, EXPLAIN or a read-only PRAGMA, contain no write
// keywords, and be a single statement.
func ValidateReadOnlyQuery(query string) error {
	normalized := strings.TrimSpace(strings.ToLower(sqlComments.ReplaceAllString(query, "")))
	if normalized == "" {
		return store.Usagef("empty query")
	}

	allowed := false
	for _, prefix := range []string{"select", "with", "explain"} {
		if strings.HasPrefix(normalized, prefix) {
			allowed = true
			break
		}
	}

	if strings.HasPrefix(normalized, "pragma") {
		for _, pragma := range readOnlyPragmas {
			if strings.HasPrefix(normalized, pragma) {
				allowed = true
				break
			}
		}
		if !allowed {
			return store.Usagef("PRAGMA statement not allowed: only read-only PRAGMA statements are permitted")
		}
	}

	if !allowed {
		return store.Usagef("only read-only queries are allowed (SELECT, WITH, EXPLAIN, and read-only PRAGMA)")
	}

	for _, keyword := range forbiddenKeywords {
		re := regexp.MustCompile(`\b` + keyword + `\b`)
		if re.MatchString(normalized) {
			return store.Usagef("forbidden keyword %q: only read-only operations are allowed", strings.ToUpper(keyword))
		}
	}

	if strings.Count(normalized, ";") > 1 || (strings.Contains(normalized, ";") && !strings.HasSuffix(normalized, ";")) {
		return store.Usagef("multiple statements are not allowed")
	}

	return nil
}
