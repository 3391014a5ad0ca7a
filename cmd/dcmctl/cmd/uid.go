package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpfielding/dcmattr.go/pkg/dicom/uid"
)

// NewUIDCmd prints generated or resolved UIDs
func NewUIDCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uid [uid...]",
		Short: "generate or describe UIDs",
		Long:  "Without arguments prints new 2.25 UIDs. With --hash prints the stable UID for a value. With arguments describes each UID.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) > 0 {
				for _, s := range args {
					if !uid.IsValid(s) {
						return fmt.Errorf("invalid UID %q", s)
					}
					u := uid.Resolve(s)
					fmt.Fprintf(out, "%s\t%s\t%s\n", u, u.Type, u.Description())
				}
				return nil
			}
			if hash, _ := cmd.Flags().GetString("hash"); hash != "" {
				u, err := uid.FromHash(hash)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, u)
				return nil
			}
			count, _ := cmd.Flags().GetInt("count")
			for i := 0; i < count; i++ {
				fmt.Fprintln(out, uid.New())
			}
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.IntP("count", "n", 1, "number of UIDs to generate")
	pf.String("hash", "", "derive a stable UID from this value")
	return cmd
}
