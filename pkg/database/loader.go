package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"rfm-segments/pkg/models"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Open ouvre une connexion selon le schéma du DSN :
// mariadb:// ou mysql:// → driver MySQL, postgres:// → lib/pq, sqlite:// ou file: → SQLite.
// Tout autre DSN est passé tel quel au driver MySQL.
func Open(dsn string) (*sql.DB, string, error) {
	driver, native, err := resolveDSN(dsn)
	if err != nil {
		return nil, "", err
	}
	db, err := sql.Open(driver, native)
	if err != nil {
		return nil, "", err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, native, nil
}

// resolveDSN retourne le nom du driver et le DSN natif.
func resolveDSN(dsn string) (string, string, error) {
	switch {
	case strings.HasPrefix(dsn, "mariadb://"), strings.HasPrefix(dsn, "mysql://"):
		native, err := toMySQLDSN(dsn)
		return "mysql", native, err
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "postgres", dsn, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		path := strings.TrimPrefix(dsn, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("dsn incomplet (sqlite path)")
		}
		return "sqlite", path, nil
	case strings.HasPrefix(dsn, "file:"):
		return "sqlite", dsn, nil
	}
	return "mysql", dsn, nil
}

func toMySQLDSN(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	user := ""
	pass := ""
	if u.User != nil {
		user = u.User.Username()
		pw, _ := u.User.Password()
		pass = pw
	}
	host := u.Host
	db := strings.TrimPrefix(u.Path, "/")
	if user == "" || host == "" || db == "" {
		return "", fmt.Errorf("dsn incomplet (user/host/db)")
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&interpolateParams=true",
		user, pass, host, db), nil
}

// LoadTransactions lit les trois colonnes demandées de la table des transactions.
// Les lignes sans identifiant client sont ignorées ; le reste est converti par le pipeline.
func LoadTransactions(ctx context.Context, db *sql.DB, table string, fields models.Fields) (models.Table, error) {
	for _, name := range []string{table, fields.ID, fields.Date, fields.Revenue} {
		if !identRe.MatchString(name) {
			return models.Table{}, fmt.Errorf("identifiant invalide %q", name)
		}
	}

	q := fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s
		FROM %s t
		WHERE t.%s IS NOT NULL
	`, fields.ID, fields.Date, fields.Revenue, table, fields.ID)

	slog.Debug("load transactions", "table", table, "id", fields.ID, "date", fields.Date, "revenue", fields.Revenue)

	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return models.Table{}, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	out := models.Table{Columns: []string{fields.ID, fields.Date, fields.Revenue}}
	for rows.Next() {
		var id, date, revenue any
		if err := rows.Scan(&id, &date, &revenue); err != nil {
			return models.Table{}, fmt.Errorf("scan %s: %w", table, err)
		}
		out.Rows = append(out.Rows, []any{normalize(id), normalize(date), normalize(revenue)})
	}
	if err := rows.Err(); err != nil {
		return models.Table{}, err
	}

	slog.Debug("transactions loaded", "table", table, "rows", len(out.Rows))
	return out, nil
}

// normalize convertit les []byte renvoyés par certains drivers en chaînes.
func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
