package rawdb

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"

	"github.com/MasamiYui/ciri/core/types"
	"github.com/MasamiYui/ciri/sedes"
)

func testHeader(t *testing.T, number, difficulty uint64, parent types.Hash) *types.Header {
	t.Helper()
	h, err := types.NewHeader(map[string]sedes.Value{
		"parent_hash":       sedes.Raw(parent.Bytes()),
		"transactions_root": sedes.Raw(types.Hash{}.Bytes()),
		"beneficiary":       sedes.Raw(types.Address{}.Bytes()),
		"state_root":        sedes.Raw(types.Hash{}.Bytes()),
		"receipts_root":     sedes.Raw(types.Hash{}.Bytes()),
		"difficulty":        sedes.Uint(difficulty),
		"number":            sedes.Uint(number),
		"gas_limit":         sedes.Uint(8_000_000),
		"timestamp":         sedes.Uint(1_500_000_000 + number),
		"mix_hash":          sedes.Raw(types.Hash{}.Bytes()),
		"nonce":             sedes.Raw(types.BlockNonce{}.Bytes()),
	})
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func TestHeaderWriteRead(t *testing.T) {
	db := NewMemoryKVStore()
	h := testHeader(t, 1, 1000, types.Hash{})

	hash, err := WriteHeader(db, h)
	if err != nil {
		t.Fatal(err)
	}
	if hash != h.Hash() {
		t.Fatalf("content key: got %s, want %s", hash, h.Hash())
	}
	if !HasHeader(db, hash) {
		t.Fatal("written header not found")
	}

	got, err := ReadHeader(db, hash)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(h) {
		t.Fatal("read header differs from written header")
	}
	// The round trip preserves the content address.
	if got.Hash() != hash {
		t.Fatalf("hash after round trip: got %s", got.Hash())
	}

	if err := DeleteHeader(db, hash); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadHeader(db, hash); !errors.Is(err, ErrNotFound) {
		t.Fatalf("after delete: got %v, want %v", err, ErrNotFound)
	}
}

func TestReadHeaderDetectsCorruption(t *testing.T) {
	db := NewMemoryKVStore()
	h := testHeader(t, 1, 1000, types.Hash{})
	hash, err := WriteHeader(db, h)
	if err != nil {
		t.Fatal(err)
	}

	// Corrupt the stored bytes behind the accessor's back.
	data, _ := db.Get(headerKey(hash))
	data[len(data)-1] ^= 0xff
	if err := db.Put(headerKey(hash), data); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadHeader(db, hash); !errors.Is(err, ErrContentMismatch) {
		t.Fatalf("got %v, want %v", err, ErrContentMismatch)
	}
}

func TestCanonicalAndHead(t *testing.T) {
	db := NewMemoryKVStore()
	h := testHeader(t, 7, 1, types.Hash{})
	hash, _ := WriteHeader(db, h)

	if err := WriteCanonicalHash(db, 7, hash); err != nil {
		t.Fatal(err)
	}
	got, err := ReadCanonicalHash(db, 7)
	if err != nil || got != hash {
		t.Fatalf("canonical: %s %v", got, err)
	}
	if _, err := ReadCanonicalHash(db, 8); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unset height: got %v", err)
	}
	if err := DeleteCanonicalHash(db, 7); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadCanonicalHash(db, 7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("after delete: got %v", err)
	}

	if err := WriteHeadHeaderHash(db, hash); err != nil {
		t.Fatal(err)
	}
	head, err := ReadHeadHeaderHash(db)
	if err != nil || head != hash {
		t.Fatalf("head: %s %v", head, err)
	}
}

func TestTotalDifficultyAccumulation(t *testing.T) {
	db := NewMemoryKVStore()

	genesis := testHeader(t, 0, 1000, types.Hash{})
	td, err := AccumulateTotalDifficulty(db, genesis)
	if err != nil {
		t.Fatal(err)
	}
	if td.Uint64() != 1000 {
		t.Fatalf("genesis td: got %d", td.Uint64())
	}

	child := testHeader(t, 1, 500, genesis.Hash())
	td, err = AccumulateTotalDifficulty(db, child)
	if err != nil {
		t.Fatal(err)
	}
	if td.Uint64() != 1500 {
		t.Fatalf("child td: got %d", td.Uint64())
	}

	grandchild := testHeader(t, 2, 250, child.Hash())
	if _, err := AccumulateTotalDifficulty(db, grandchild); err != nil {
		t.Fatal(err)
	}
	stored, err := ReadTotalDifficulty(db, grandchild.Hash())
	if err != nil {
		t.Fatal(err)
	}
	if stored.Cmp(uint256.NewInt(1750)) != 0 {
		t.Fatalf("stored td: got %s", stored)
	}

	// A child of an unknown parent cannot accumulate.
	orphan := testHeader(t, 9, 1, types.HexToHash("0xdead"))
	if _, err := AccumulateTotalDifficulty(db, orphan); !errors.Is(err, ErrNotFound) {
		t.Fatalf("orphan: got %v", err)
	}
}

func TestTotalDifficultyZero(t *testing.T) {
	db := NewMemoryKVStore()
	hash := types.HexToHash("0x01")
	if err := WriteTotalDifficulty(db, hash, new(uint256.Int)); err != nil {
		t.Fatal(err)
	}
	td, err := ReadTotalDifficulty(db, hash)
	if err != nil {
		t.Fatal(err)
	}
	if !td.IsZero() {
		t.Fatalf("got %s, want 0", td)
	}
}
