package cli

import (
	"github.com/spf13/cobra"

	"github.com/jwtsgo/jwt"
	"github.com/jwtsgo/jwt/internal/config"
)

func newDecodeCommand(a *app) *cobra.Command {
	var encoding string

	cmd := &cobra.Command{
		Use:   "decode [token|-]",
		Short: "Print the header and the claims of a token WITHOUT verifying it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("encoding") {
				a.cfg.Encoding = encoding
			}

			token, err := readToken(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			var tok *jwt.Token
			switch a.cfg.Encoding {
			case config.EncodingBase16:
				tok, err = jwt.Decode16(token)
			case config.EncodingBase32:
				tok, err = jwt.Decode32(token)
			default:
				tok, err = jwt.Decode(token)
			}
			if err != nil {
				return err
			}

			a.logger.Warn("the token signature and claims were not verified")
			return newPrinter(a.output, a.out).printToken(tok, false)
		},
	}

	cmd.Flags().StringVar(&encoding, "encoding", "", "token encoding (base64, base16, base32)")
	return cmd
}
