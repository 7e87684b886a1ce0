package main

import (
	"fmt"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/sipparse"
	"github.com/ghettovoice/sipparse/digest"
	"github.com/ghettovoice/sipparse/internal/errorutil"
)

type digestOptions struct {
	Username  string
	Password  string
	HA1       string
	Realm     string
	Challenge string
	Method    string
	URI       string
	Body      string
	CNonce    string
}

func newDigestCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &digestOptions{}

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Answer a Digest challenge",
		Long: `Parse a WWW-Authenticate or Proxy-Authenticate value given by --challenge
and print the Authorization header value for the request.
Credentials not given by flags are taken from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.fill(rootOpts.cfg)
			return runDigest(cmd, rootOpts, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Username, "username", "u", "", "user name")
	flags.StringVarP(&opts.Password, "password", "p", "", "password")
	flags.StringVar(&opts.HA1, "ha1", "", "precomputed MD5(username:realm:password)")
	flags.StringVar(&opts.Realm, "realm", "", "realm the --ha1 value is bound to")
	flags.StringVarP(&opts.Challenge, "challenge", "c", "", "challenge header value")
	flags.StringVarP(&opts.Method, "method", "m", "REGISTER", "request method")
	flags.StringVar(&opts.URI, "uri", "", "request URI")
	flags.StringVar(&opts.Body, "body", "", "request body, used by qop=auth-int")
	flags.StringVar(&opts.CNonce, "cnonce", "", "fixed client nonce instead of a random one")
	_ = cmd.MarkFlagRequired("challenge")
	_ = cmd.MarkFlagRequired("uri")
	return cmd
}

func (o *digestOptions) fill(cfg fileConfig) {
	if o.Username == "" {
		o.Username = cfg.Username
	}
	if o.Password == "" {
		o.Password = cfg.Password
	}
	if o.HA1 == "" {
		o.HA1 = cfg.HA1
	}
	if o.Realm == "" {
		o.Realm = cfg.Realm
	}
}

func runDigest(cmd *cobra.Command, rootOpts *rootOptions, opts *digestOptions) error {
	if opts.Username == "" {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("username is required"))
	}
	if opts.Password == "" && opts.HA1 == "" {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("password or ha1 is required"))
	}

	cln, err := sipparse.ParseChallenge(opts.Challenge, &sipparse.Options{Logger: rootOpts.logger})
	if err != nil {
		return errtrace.Wrap(fmt.Errorf("parse challenge: %w", err))
	}

	var secret digest.Secret
	if opts.Password != "" {
		secret = digest.Password(opts.Password)
	}
	credOpts := []digest.Option{digest.WithLogger(rootOpts.logger)}
	if opts.HA1 != "" {
		credOpts = append(credOpts, digest.WithHA1(opts.HA1, opts.Realm))
	}
	if opts.CNonce != "" {
		cnonce := opts.CNonce
		credOpts = append(credOpts, digest.WithTokenGenerator(digest.TokenGeneratorFunc(func(int) string {
			return cnonce
		})))
	}

	creds := digest.NewCredentials(opts.Username, secret, credOpts...)
	if !creds.Authenticate(digest.Request{Method: opts.Method, URI: opts.URI}, cln, []byte(opts.Body)) {
		return errtrace.Wrap(errorutil.Errorf("challenge %q rejected", opts.Challenge))
	}
	auth, err := creds.Serialize()
	if err != nil {
		return errtrace.Wrap(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), auth)
	return nil
}
