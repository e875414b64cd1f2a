package util

import (
	"database/sql"
	"net/url"
	"time"

	_ "github.com/xeodou/go-sqlcipher"

	"pixsteg/cryptography"
)

const (
	OpHide   = "hide"
	OpReveal = "reveal"
)

/*
 * history of carriers produced or read by this tool. Only hashes of image
 * files are stored, never the messages.
 */
type DB struct {
	db        *sql.DB
	rowsLimit uint
}

type Record struct {
	Hash    string
	Op      string
	Created time.Time
}

func ConnectDB(filename, password string, rowsLimit uint) (*DB, error) {
	dbFilename := "file:" + url.QueryEscape(filename)
	dbFilename += "?_journal_mode=WAL&_key=" + url.QueryEscape(password)

	db, err := sql.Open("sqlite3", dbFilename)
	if err != nil {
		return nil, err
	}
	final := &DB{
		db:        db,
		rowsLimit: rowsLimit,
	}
	// check amount of rows
	rows, err := final.Count()
	if err == nil && uint(rows) > rowsLimit {
		db.Close()
		if err = ShredFile(filename); err != nil {
			return nil, err
		}
		// the fresh file is empty, no deeper recursion happens
		return ConnectDB(filename, password, rowsLimit)
	} // else the database was not existing before
	return final, nil
}

func (db *DB) Close() {
	db.db.Close()
}

func (db *DB) InitDB() error {
	sqlStmt := `create table if not exists carriers(
		id integer not null primary key autoincrement,
		hash text not null,
		op text not null,
		created integer not null);`
	if _, err := db.db.Exec(sqlStmt); err != nil {
		return err
	}
	// add indexation in order to optimize database search
	_, err := db.db.Exec(`create index if not exists hashIdx on carriers(hash);`)
	return err
}

// AddCarrier remembers the image file data under op.
func (db *DB) AddCarrier(data []byte, op string) error {
	hash := cryptography.Hash(data)
	_, err := db.db.Exec("insert into carriers(hash, op, created) values(?, ?, ?);",
		hash, op, time.Now().Unix())
	return err
}

// Lookup returns every record of the image file data, oldest first.
func (db *DB) Lookup(data []byte) ([]Record, error) {
	hash := cryptography.Hash(data)
	rows, err := db.db.Query(`select hash, op, created from carriers where hash = ? order by id;`, hash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []Record{}
	for rows.Next() {
		var r Record
		var created int64
		if err = rows.Scan(&r.Hash, &r.Op, &created); err != nil {
			return nil, err
		}
		r.Created = time.Unix(created, 0)
		result = append(result, r)
	}
	return result, rows.Err()
}

func (db *DB) Count() (int, error) {
	var amount int
	if err := db.db.QueryRow(`select count(*) from carriers;`).Scan(&amount); err != nil {
		return -1, err
	}
	return amount, nil
}
