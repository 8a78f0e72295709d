// Command roastdemo wires a ciphersuite, a trusted-dealer key-generation
// fixture, and the roast.Coordinator together for a local, single-process
// dry-run signing session, printing the group key, every signer the
// coordinator excludes, and the verified signature to stdout.
//
// Grounded on the teacher's root-level protocol.go main(), which already
// runs a local multi-party FROST/ROAST simulation over goroutines; this
// recasts that shape as a proper cmd/ entrypoint driving the real frost and
// roast packages instead of the teacher's inconsistent package-main
// prototype arithmetic.
package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"os"

	"threshold.network/roast/ciphersuite"
	"threshold.network/roast/ciphersuite/ristretto255"
	"threshold.network/roast/ciphersuite/secp256k1"
	"threshold.network/roast/frost"
	"threshold.network/roast/frost/roast"
	"threshold.network/roast/internal/testutils"
)

func main() {
	n := flag.Int("n", 5, "group size")
	t := flag.Int("t", 3, "signing threshold")
	cs := flag.String("ciphersuite", "ristretto255", "ciphersuite: ristretto255 or secp256k1")
	message := flag.String("message", "roastdemo", "message to sign")
	flag.Parse()

	if err := run(*n, *t, *cs, *message); err != nil {
		fmt.Fprintf(os.Stderr, "roastdemo: %v\n", err)
		os.Exit(1)
	}
}

func run(n, t int, csName, message string) error {
	var suite ciphersuite.Suite
	switch csName {
	case "ristretto255":
		suite = ristretto255.New()
	case "secp256k1":
		suite = secp256k1.New()
	default:
		return fmt.Errorf("unknown ciphersuite %q (want ristretto255 or secp256k1)", csName)
	}

	secret, err := suite.Group().RandomScalar(rand.Reader)
	if err != nil {
		return fmt.Errorf("generating group secret: %w", err)
	}

	keyPackages, pubKeyPkg, err := testutils.TrustedDealerKeyGen(suite, secret, n, t, rand.Reader)
	if err != nil {
		return fmt.Errorf("trusted-dealer key generation: %w", err)
	}
	fmt.Printf("roastdemo: %s group, n=%d t=%d, verifying key %x\n", suite.Name(), n, t, pubKeyPkg.VerifyingKey.Bytes())

	pool := make([]roast.Signer, 0, n)
	for i := 1; i <= n; i++ {
		pool = append(pool, roast.NewLocalSigner(suite, keyPackages[i]))
	}

	var params ciphersuite.SigningParameters
	if _, ok := suite.(*secp256k1.Suite); ok {
		params = secp256k1.SigningParameters{}
	}

	coordinator := &roast.Coordinator{
		Suite:     suite,
		PubKeyPkg: pubKeyPkg,
		Threshold: t,
		Message:   []byte(message),
		Params:    params,
		Log:       func(format string, args ...any) { fmt.Printf(format+"\n", args...) },
	}

	sig, err := coordinator.Run(context.Background(), pool)
	if err != nil {
		return fmt.Errorf("roast signing session: %w", err)
	}

	if err := frost.Verify(suite, pubKeyPkg.VerifyingKey.Element, []byte(message), sig, params); err != nil {
		return fmt.Errorf("produced signature failed verification: %w", err)
	}
	fmt.Printf("roastdemo: signature verified (R=%x, z=%x)\n", sig.R.Bytes(), sig.Z.Bytes())
	return nil
}
