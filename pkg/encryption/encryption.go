package encryption

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/crypto/hkdf"
)

const (
	KeySize = 16
	IVSize  = aes.BlockSize
	TagSize = sha256.Size
)

var (
	ErrEncryption = errors.New("encryption failed")
	ErrDecryption = errors.New("decryption failed")

	macInfo = []byte("onetime-secrets/aes-128-cbc-hmac-sha256")
)

type (
	// Sealed is the output of a single Encrypt call. Key and IV are never
	// shared with another Sealed value.
	Sealed struct {
		Ciphertext []byte
		Key        []byte
		IV         []byte
	}

	// Cipher encrypts with AES-128-CBC and authenticates the result with
	// HMAC-SHA256. It holds no state between calls.
	Cipher struct {
		rand io.Reader
	}
)

func New() *Cipher {
	return &Cipher{rand: rand.Reader}
}

// NewWithRand uses r for key and IV generation.
func NewWithRand(r io.Reader) *Cipher {
	return &Cipher{rand: r}
}

func GenerateNewKey(r io.Reader, size int) ([]byte, error) {
	key := make([]byte, size)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}

func (c *Cipher) Encrypt(plaintext string) (*Sealed, error) {
	key, err := GenerateNewKey(c.rand, KeySize)
	if err != nil {
		return nil, fmt.Errorf("%w: generating key: %w", ErrEncryption, err)
	}
	iv, err := GenerateNewKey(c.rand, IVSize)
	if err != nil {
		return nil, fmt.Errorf("%w: generating iv: %w", ErrEncryption, err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncryption, err)
	}
	macKey, err := deriveMACKey(key, iv)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncryption, err)
	}

	body := pad([]byte(plaintext), block.BlockSize())
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(body, body)

	return &Sealed{
		Ciphertext: append(body, tag(macKey, iv, body)...),
		Key:        key,
		IV:         iv,
	}, nil
}

func (c *Cipher) Decrypt(ciphertext, key, iv []byte) (string, error) {
	if len(key) != KeySize {
		return "", fmt.Errorf("%w: key must be %d bytes, got %d", ErrDecryption, KeySize, len(key))
	}
	if len(iv) != IVSize {
		return "", fmt.Errorf("%w: iv must be %d bytes, got %d", ErrDecryption, IVSize, len(iv))
	}
	size := len(ciphertext) - TagSize
	if size < aes.BlockSize || size%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: malformed ciphertext of %d bytes", ErrDecryption, len(ciphertext))
	}
	body, sum := ciphertext[:size], ciphertext[size:]

	macKey, err := deriveMACKey(key, iv)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryption, err)
	}
	if !hmac.Equal(sum, tag(macKey, iv, body)) {
		return "", fmt.Errorf("%w: authentication tag mismatch", ErrDecryption)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryption, err)
	}
	plaintext := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, body)

	plaintext, err = unpad(plaintext, block.BlockSize())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryption, err)
	}
	if !utf8.Valid(plaintext) {
		return "", fmt.Errorf("%w: plaintext is not valid utf-8", ErrDecryption)
	}
	return string(plaintext), nil
}

func deriveMACKey(key, iv []byte) ([]byte, error) {
	macKey := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, key, iv, macInfo), macKey); err != nil {
		return nil, fmt.Errorf("deriving mac key: %w", err)
	}
	return macKey, nil
}

func tag(macKey, iv, body []byte) []byte {
	m := hmac.New(sha256.New, macKey)
	m.Write(iv)
	m.Write(body)
	return m.Sum(nil)
}

// pad applies PKCS#7 padding. A full block is appended when len(src) is
// already aligned.
func pad(src []byte, size int) []byte {
	n := size - len(src)%size
	return append(bytes.Clone(src), bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(src []byte, size int) ([]byte, error) {
	if len(src) == 0 || len(src)%size != 0 {
		return nil, errors.New("invalid padded length")
	}
	n := int(src[len(src)-1])
	if n == 0 || n > size {
		return nil, errors.New("invalid padding")
	}
	for _, b := range src[len(src)-n:] {
		if int(b) != n {
			return nil, errors.New("invalid padding")
		}
	}
	return src[:len(src)-n], nil
}
