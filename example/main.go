package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strings"

	ffdh "github.com/backkem/ffdh-go"
	"github.com/backkem/ffdh-go/internal/crypto"
)

func main() {
	// This is a simple example of a finite-field DH key agreement.
	// In a real application, the two parties would be separate processes
	// exchanging public values over a transport.

	// Pick a group from the command line or use the 2048-bit default.
	param := ffdh.FFDHE2048
	if len(os.Args) > 1 {
		param = findParam(os.Args[1])
	}

	fmt.Println("Finite-Field Diffie-Hellman Example (RFC 7919 groups)")
	fmt.Println("=====================================================")
	fmt.Printf("Using group: %s (%d-byte secrets)\n", param.Name, param.SecretLen)

	runDemo(param)
}

// findParam resolves a group by name, exiting with the known names on a miss.
func findParam(name string) *ffdh.Param {
	for _, p := range ffdh.Params {
		if p.Name == name {
			return p
		}
	}
	var names []string
	for _, p := range ffdh.Params {
		names = append(names, p.Name)
	}
	log.Fatalf("Unknown group %q, pick one of: %s", name, strings.Join(names, ", "))
	return nil
}

// runDemo runs a complete key agreement between two simulated parties.
func runDemo(param *ffdh.Param) {
	fmt.Println("\nSetting up key exchange contexts for both parties...")

	alice, err := ffdh.New(param, nil)
	if err != nil {
		log.Fatalf("Error creating context for alice: %v", err)
	}
	bob, err := ffdh.New(param, nil)
	if err != nil {
		log.Fatalf("Error creating context for bob: %v", err)
	}

	// Step 1: both parties export their public values.
	fmt.Println("\nStep 1: Exchanging public values...")
	var aliceBuf, bobBuf [ffdh.MaxPublicKeyLen]byte
	alicePub, err := alice.PublicKey(aliceBuf[:])
	if err != nil {
		log.Fatalf("Error exporting alice's public value: %v", err)
	}
	bobPub, err := bob.PublicKey(bobBuf[:])
	if err != nil {
		log.Fatalf("Error exporting bob's public value: %v", err)
	}
	fmt.Printf("Alice's public value (%d bytes): %s\n", len(alicePub), formatHex(alicePub, 64))
	fmt.Printf("Bob's public value (%d bytes): %s\n", len(bobPub), formatHex(bobPub, 64))

	// Step 2: alice derives a session key through an ephemeral, single-use
	// agreement; the raw secret never leaves the KDF callback.
	fmt.Println("\nStep 2: Alice agrees ephemerally and derives a session key...")
	aliceKey, err := ffdh.AgreeEphemeral(alice, bobPub, func(secret []byte) ([]byte, error) {
		return crypto.HKDF(secret, nil, []byte("ffdh example"), 32)
	})
	if err != nil {
		log.Fatalf("Error agreeing on alice's side: %v", err)
	}

	// Step 3: bob computes the same shared secret and derives his copy.
	fmt.Println("Step 3: Bob computes the shared secret and derives his key...")
	secret, err := bob.SharedSecret(alicePub)
	if err != nil {
		log.Fatalf("Error computing shared secret on bob's side: %v", err)
	}
	bobKey, err := crypto.HKDF(secret, nil, []byte("ffdh example"), 32)
	if err != nil {
		log.Fatalf("Error deriving bob's key: %v", err)
	}

	fmt.Println("\nAgreement completed!")
	fmt.Printf("Alice's key (%d bytes): %s\n", len(aliceKey), formatHex(aliceKey, 64))
	fmt.Printf("Bob's key (%d bytes): %s\n", len(bobKey), formatHex(bobKey, 64))

	if bytes.Equal(aliceKey, bobKey) {
		fmt.Println("\n✓ Agreement successful: Keys match!")
	} else {
		fmt.Println("\n✗ Agreement failed: Keys don't match!")
	}

	// Alice's context is spent; further use is rejected.
	if _, err := alice.SharedSecret(bobPub); err != nil {
		fmt.Printf("Reusing alice's consumed context is rejected: %v\n", err)
	}
}

// formatHex formats a hex string with line breaks for better readability
func formatHex(data []byte, lineLength int) string {
	hexStr := hex.EncodeToString(data)
	if len(hexStr) <= lineLength {
		return hexStr
	}

	var result strings.Builder
	for i := 0; i < len(hexStr); i += lineLength {
		end := i + lineLength
		if end > len(hexStr) {
			end = len(hexStr)
		}
		if i > 0 {
			result.WriteString("\n  ")
		}
		result.WriteString(hexStr[i:end])
	}
	return result.String()
}
