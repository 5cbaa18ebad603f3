// Package fhe is the encrypted-value engine backing the confidential
// shipment fields. It encrypts small integers under BGV, addresses the
// resulting ciphertexts by handle, and keeps a per-handle grant set.
//
// Grants only ever grow: once a principal holds access to a ciphertext
// handle there is no revocation path. Callers that need "revocation"
// rotate which principal the plaintext authorization gate recognizes;
// already-shared ciphertexts stay readable to past grantees.
package fhe

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"privacy-cargo-tracking/internal/core/cache"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/schemes/bgv"
)

var (
	// ErrHandleNotFound is returned when a handle has no stored ciphertext.
	ErrHandleNotFound = errors.New("ciphertext handle not found")
)

const (
	ciphertextKeyPrefix = "fhe:ct:"
	grantKeyPrefix      = "fhe:acl:"

	// limbBits is how many bits of a packed integer go into one plaintext
	// slot. The plaintext modulus is 65537, so a slot holds 16 bits.
	limbBits  = 16
	limbMask  = (1 << limbBits) - 1
	limbCount = 64 / limbBits
)

// ParametersLiteral returns a BGV parameter set supporting
// ciphertext×plaintext operations at ≈128-bit security:
// one 54-bit ciphertext prime, one 54-bit special prime for future
// key-switching, and the NTT-friendly plaintext modulus 65537.
func ParametersLiteral(logN int) bgv.ParametersLiteral {
	return bgv.ParametersLiteral{
		LogN:             logN,
		LogQ:             []int{54},
		LogP:             []int{54},
		PlaintextModulus: 65537,
	}
}

// Engine encrypts values and tracks per-handle access grants.
type Engine struct {
	params    bgv.Parameters
	sk        *rlwe.SecretKey
	pk        *rlwe.PublicKey
	encoder   *bgv.Encoder
	encryptor *rlwe.Encryptor
	store     cache.Store
	self      string
}

// NewEngine builds the BGV context, generates a fresh keypair, and derives
// the engine's own principal id from the public key.
func NewEngine(store cache.Store, logN int) (*Engine, error) {
	params, err := bgv.NewParametersFromLiteral(ParametersLiteral(logN))
	if err != nil {
		return nil, fmt.Errorf("failed to build BGV parameters: %w", err)
	}

	kgen := bgv.NewKeyGenerator(params)
	sk, pk := kgen.GenKeyPairNew()

	pkBytes, err := pk.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize public key: %w", err)
	}
	sum := sha256.Sum256(pkBytes)

	return &Engine{
		params:    params,
		sk:        sk,
		pk:        pk,
		encoder:   bgv.NewEncoder(params),
		encryptor: bgv.NewEncryptor(params, pk),
		store:     store,
		self:      "svc:" + hex.EncodeToString(sum[:4]),
	}, nil
}

// Params returns the BGV parameter set in use.
func (e *Engine) Params() bgv.Parameters {
	return e.params
}

// SelfAddress returns the engine's own principal id, which is granted on
// every handle it produces so the service can keep operating on them.
func (e *Engine) SelfAddress() string {
	return e.self
}

// EncryptSmall encrypts a small integer into a single plaintext slot.
// The value must fit the plaintext modulus.
func (e *Engine) EncryptSmall(ctx context.Context, value uint64) (string, error) {
	if value > limbMask {
		return "", fmt.Errorf("value %d exceeds single-slot range", value)
	}
	return e.encrypt(ctx, []uint64{value})
}

// EncryptBool encrypts a boolean as a 0/1 slot.
func (e *Engine) EncryptBool(ctx context.Context, value bool) (string, error) {
	var v uint64
	if value {
		v = 1
	}
	return e.encrypt(ctx, []uint64{v})
}

// EncryptUint64 encrypts a full 64-bit integer. The plaintext modulus
// holds 16 bits per slot, so the value is packed little-endian as four
// 16-bit limbs across consecutive slots.
func (e *Engine) EncryptUint64(ctx context.Context, value uint64) (string, error) {
	limbs := make([]uint64, limbCount)
	for i := range limbs {
		limbs[i] = (value >> (i * limbBits)) & limbMask
	}
	return e.encrypt(ctx, limbs)
}

// encrypt encodes the limbs at max level, encrypts them, persists the
// ciphertext, and returns its handle: the sha256 hex of the serialized
// ciphertext. Encryption is randomized, so handles never collide in
// practice even for equal plaintexts.
func (e *Engine) encrypt(ctx context.Context, limbs []uint64) (string, error) {
	vec := make([]uint64, e.params.MaxSlots())
	copy(vec, limbs)

	pt := bgv.NewPlaintext(e.params, e.params.MaxLevel())
	if err := e.encoder.Encode(vec, pt); err != nil {
		return "", fmt.Errorf("failed to encode plaintext: %w", err)
	}

	ct, err := e.encryptor.EncryptNew(pt)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt: %w", err)
	}

	ctBytes, err := ct.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("failed to serialize ciphertext: %w", err)
	}

	sum := sha256.Sum256(ctBytes)
	handle := hex.EncodeToString(sum[:])

	b64 := base64.StdEncoding.EncodeToString(ctBytes)
	if err := e.store.Set(ctx, ciphertextKeyPrefix+handle, []byte(b64), 0); err != nil {
		return "", fmt.Errorf("failed to persist ciphertext: %w", err)
	}

	return handle, nil
}

// GrantSelfAccess grants the engine's own principal access to the handle.
func (e *Engine) GrantSelfAccess(ctx context.Context, handle string) error {
	return e.GrantAccess(ctx, handle, e.self)
}

// GrantAccess grants a principal access to the handle. Granting an
// already-granted principal is a no-op. There is no ungrant.
func (e *Engine) GrantAccess(ctx context.Context, handle, principal string) error {
	if _, err := e.store.Get(ctx, ciphertextKeyPrefix+handle); err != nil {
		return fmt.Errorf("%w: %s", ErrHandleNotFound, handle)
	}
	if err := e.store.SAdd(ctx, grantKeyPrefix+handle, principal); err != nil {
		return fmt.Errorf("failed to grant access on %s: %w", handle, err)
	}
	return nil
}

// HasAccess reports whether the principal was ever granted the handle.
func (e *Engine) HasAccess(ctx context.Context, handle, principal string) (bool, error) {
	ok, err := e.store.SIsMember(ctx, grantKeyPrefix+handle, principal)
	if err != nil {
		return false, fmt.Errorf("failed to check access on %s: %w", handle, err)
	}
	return ok, nil
}

// Ciphertext returns the stored ciphertext bytes for a handle.
func (e *Engine) Ciphertext(ctx context.Context, handle string) ([]byte, error) {
	b64, err := e.store.Get(ctx, ciphertextKeyPrefix+handle)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrHandleNotFound, handle)
	}
	raw, err := base64.StdEncoding.DecodeString(string(b64))
	if err != nil {
		return nil, fmt.Errorf("corrupt ciphertext for handle %s: %w", handle, err)
	}
	return raw, nil
}
