package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vault-cli/bwimport/internal/domain"
)

// Cheap parameters so tests stay fast; production defaults are higher.
func testKDFParams() KDFParams {
	return KDFParams{Memory: 1024, Iterations: 1, Parallelism: 1}
}

func testTree() *domain.Tree {
	tree := domain.NewTree("Bitwarden Import")
	work := domain.NewGroup("Work", tree.Root)

	entry := domain.NewEntry()
	entry.Title = "Site"
	entry.Username = "bob"
	entry.Password = "secret"
	entry.SetAttribute("card_code", "123", true)
	work.AddEntry(entry)

	rootEntry := domain.NewEntry()
	rootEntry.Title = "Loose"
	tree.Root.AddEntry(rootEntry)

	return tree
}

func TestStoreImportAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.db")

	s, err := Create(path, "passphrase", testKDFParams())
	require.NoError(t, err)

	tree := testTree()
	require.NoError(t, s.ImportTree(tree))
	require.NoError(t, s.Close())

	// Reopen with the right passphrase and read everything back.
	s, err = Open(path, "passphrase")
	require.NoError(t, err)
	defer s.Close()

	summaries, err := s.ListEntries()
	require.NoError(t, err)
	assert.Len(t, summaries, 2)

	var siteID string
	for _, sum := range summaries {
		if sum.Title == "Site" {
			siteID = sum.ID
			assert.Equal(t, "Work", sum.Group)
		}
		if sum.Title == "Loose" {
			assert.Equal(t, "", sum.Group)
		}
	}
	require.NotEmpty(t, siteID)

	entry, err := s.GetEntry(siteID)
	require.NoError(t, err)
	assert.Equal(t, "bob", entry.Username)
	assert.Equal(t, "secret", entry.Password)
	assert.Equal(t, "123", entry.Attribute("card_code"))
}

func TestStoreWrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.db")

	s, err := Create(path, "passphrase", testKDFParams())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Open(path, "not-the-passphrase")
	assert.ErrorIs(t, err, ErrWrongPassphrase)
}

func TestStoreCreateExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.db")

	s, err := Create(path, "passphrase", testKDFParams())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Create(path, "passphrase", testKDFParams())
	assert.ErrorIs(t, err, ErrVaultExists)
}

func TestStoreCreateFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()

	// Block the vault path with a regular file where its parent directory
	// should be, then retry after clearing it.
	blocker := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))
	path := filepath.Join(blocker, "vault.db")

	_, err := Create(path, "passphrase", testKDFParams())
	require.Error(t, err)

	require.NoError(t, os.Remove(blocker))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "failed create must not leave a vault file")

	s, err := Create(path, "passphrase", testKDFParams())
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestStoreOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.db"), "passphrase")
	assert.ErrorIs(t, err, ErrVaultNotFound)
}

func TestStoreGetEntryMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.db")

	s, err := Create(path, "passphrase", testKDFParams())
	require.NoError(t, err)
	defer s.Close()

	_, err = s.GetEntry("no-such-id")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestSealRoundTrip(t *testing.T) {
	key := make([]byte, keySize)
	for i := range key {
		key[i] = byte(i)
	}

	blob, err := seal(key, []byte("plaintext"))
	require.NoError(t, err)

	got, err := unseal(key, blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("plaintext"), got)

	// Tampering must fail authentication.
	blob[len(blob)-1] ^= 0xFF
	_, err = unseal(key, blob)
	assert.Error(t, err)
}
