package main

import (
	"context"
	"fmt"

	sn "github.com/alnah/go-supernotation"
)

// signFlags holds flags for the sign command.
type signFlags struct {
	common commonFlags
	dryRun bool
}

func runSign(_ context.Context, args []string, env *Environment) error {
	fs := newFlagSet("sign", printSignUsage, env)
	f := &signFlags{}
	addCommonFlags(fs, &f.common)
	fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "print the signature the signed file would carry, without writing it")

	path, err := parseArgs(fs, args)
	if err != nil {
		return err
	}

	signature, err := sn.SignFile(path, !f.dryRun)
	if err != nil {
		return err
	}

	switch {
	case f.dryRun:
		fmt.Fprintln(env.Stdout, signature)
	case !f.common.quiet:
		fmt.Fprintf(env.Stdout, "✓ File signed: %s\n", path)
		fmt.Fprintf(env.Stdout, "  Signature: %s\n", signature)
	}
	return nil
}

// verificationError reports a failed verification with its user-facing
// message while still matching ErrSignatureNotFound or ErrSignatureMismatch.
type verificationError struct {
	v sn.Verification
}

func (e *verificationError) Error() string { return e.v.Message() }
func (e *verificationError) Unwrap() error { return e.v.Err }

func runVerify(_ context.Context, args []string, env *Environment) error {
	fs := newFlagSet("verify", printVerifyUsage, env)
	f := &commonFlags{}
	addCommonFlags(fs, f)

	path, err := parseArgs(fs, args)
	if err != nil {
		return err
	}

	v, err := sn.VerifyFile(path)
	if err != nil {
		return err
	}
	if !v.Valid {
		return &verificationError{v: v}
	}
	if !f.quiet {
		fmt.Fprintln(env.Stdout, v.Message())
	}
	return nil
}

func runUnsign(_ context.Context, args []string, env *Environment) error {
	fs := newFlagSet("unsign", printUnsignUsage, env)
	f := &commonFlags{}
	addCommonFlags(fs, f)

	path, err := parseArgs(fs, args)
	if err != nil {
		return err
	}

	removed, err := sn.UnsignFile(path)
	if err != nil {
		return err
	}
	if f.quiet {
		return nil
	}
	if removed {
		fmt.Fprintf(env.Stdout, "✓ Signature removed from: %s\n", path)
	} else {
		fmt.Fprintf(env.Stdout, "ℹ No signature found in: %s\n", path)
	}
	return nil
}
