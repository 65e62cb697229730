package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/vault-cli/bwimport/internal/domain"
)

// Bucket names.
var (
	metaBucket    = []byte("meta")
	groupsBucket  = []byte("groups")
	entriesBucket = []byte("entries")
)

// Meta keys.
var (
	metaSalt    = []byte("salt")
	metaKDF     = []byte("kdf")
	metaCheck   = []byte("check")
	metaCreated = []byte("created")
)

// checkMarker is sealed into the meta bucket at creation time; unsealing it
// on open is the passphrase check.
var checkMarker = []byte("bwimport-v1")

// Store is an open vault file. Not safe for concurrent use; the import flow
// is strictly open, write, close.
type Store struct {
	db  *bbolt.DB
	key []byte
}

// storedEntry is the on-disk entry record. Sealed holds the AES-GCM
// encrypted JSON of the full domain.Entry.
type storedEntry struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Group  string `json:"group"`
	Sealed []byte `json:"sealed"`
}

// Create initializes a new vault file and derives its key from passphrase.
func Create(path, passphrase string, params KDFParams) (*Store, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, ErrVaultExists
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create vault directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 10 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to create vault database: %w", err)
	}
	// A failure past this point must not leave a half-initialized file
	// behind; a retry would otherwise hit ErrVaultExists.
	discard := func() {
		db.Close()
		os.Remove(path)
	}

	salt, err := generateSalt()
	if err != nil {
		discard()
		return nil, err
	}
	key := deriveVaultKey(passphrase, salt, params)

	check, err := seal(key, checkMarker)
	if err != nil {
		discard()
		return nil, err
	}
	kdfJSON, err := json.Marshal(params)
	if err != nil {
		discard()
		return nil, err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{metaBucket, groupsBucket, entriesBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		meta := tx.Bucket(metaBucket)
		if err := meta.Put(metaSalt, salt); err != nil {
			return err
		}
		if err := meta.Put(metaKDF, kdfJSON); err != nil {
			return err
		}
		if err := meta.Put(metaCheck, check); err != nil {
			return err
		}
		return meta.Put(metaCreated, []byte(time.Now().UTC().Format(time.RFC3339)))
	})
	if err != nil {
		discard()
		return nil, fmt.Errorf("failed to initialize vault: %w", err)
	}

	return &Store{db: db, key: key}, nil
}

// Open opens an existing vault and verifies the passphrase against the
// sealed check marker.
func Open(path, passphrase string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, ErrVaultNotFound
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 10 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open vault database: %w", err)
	}

	var salt, check []byte
	var params KDFParams
	err = db.View(func(tx *bbolt.Tx) error {
		meta := tx.Bucket(metaBucket)
		if meta == nil {
			return ErrVaultCorrupted
		}
		salt = append([]byte(nil), meta.Get(metaSalt)...)
		check = append([]byte(nil), meta.Get(metaCheck)...)
		kdfJSON := meta.Get(metaKDF)
		if len(salt) == 0 || len(check) == 0 || kdfJSON == nil {
			return ErrVaultCorrupted
		}
		return json.Unmarshal(kdfJSON, &params)
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	key := deriveVaultKey(passphrase, salt, params)
	if _, err := unseal(key, check); err != nil {
		zeroBytes(key)
		db.Close()
		return nil, ErrWrongPassphrase
	}

	return &Store{db: db, key: key}, nil
}

// ImportTree writes every group and entry of the tree in one transaction.
// Entries directly under the root are stored with an empty group name.
func (s *Store) ImportTree(tree *domain.Tree) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		groups := tx.Bucket(groupsBucket)
		entries := tx.Bucket(entriesBucket)
		if groups == nil || entries == nil {
			return ErrVaultCorrupted
		}

		if err := s.putEntries(entries, "", tree.Root.Entries); err != nil {
			return err
		}
		for _, group := range tree.Root.Groups {
			record, err := json.Marshal(map[string]string{"id": group.ID, "name": group.Name})
			if err != nil {
				return err
			}
			if err := groups.Put([]byte(group.ID), record); err != nil {
				return err
			}
			if err := s.putEntries(entries, group.Name, group.Entries); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) putEntries(bucket *bbolt.Bucket, groupName string, list []*domain.Entry) error {
	for _, entry := range list {
		body, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		sealed, err := seal(s.key, body)
		if err != nil {
			return err
		}
		record, err := json.Marshal(storedEntry{
			ID:     entry.ID,
			Title:  entry.Title,
			Group:  groupName,
			Sealed: sealed,
		})
		if err != nil {
			return err
		}
		if err := bucket.Put([]byte(entry.ID), record); err != nil {
			return err
		}
	}
	return nil
}

// ListEntries returns the unencrypted summaries of every stored entry.
func (s *Store) ListEntries() ([]Summary, error) {
	var out []Summary
	err := s.db.View(func(tx *bbolt.Tx) error {
		entries := tx.Bucket(entriesBucket)
		if entries == nil {
			return ErrVaultCorrupted
		}
		return entries.ForEach(func(_, v []byte) error {
			var rec storedEntry
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			out = append(out, Summary{ID: rec.ID, Title: rec.Title, Group: rec.Group})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetEntry unseals and returns one entry by id.
func (s *Store) GetEntry(id string) (*domain.Entry, error) {
	var rec storedEntry
	err := s.db.View(func(tx *bbolt.Tx) error {
		entries := tx.Bucket(entriesBucket)
		if entries == nil {
			return ErrVaultCorrupted
		}
		v := entries.Get([]byte(id))
		if v == nil {
			return ErrEntryNotFound
		}
		return json.Unmarshal(v, &rec)
	})
	if err != nil {
		return nil, err
	}

	body, err := unseal(s.key, rec.Sealed)
	if err != nil {
		return nil, fmt.Errorf("failed to unseal entry: %w", err)
	}
	var entry domain.Entry
	if err := json.Unmarshal(body, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode entry: %w", err)
	}
	return &entry, nil
}

// Close zeroes the vault key and closes the database.
func (s *Store) Close() error {
	zeroBytes(s.key)
	return s.db.Close()
}
