package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sir_venger/blob_lite/pkg/blobclient"
	"github.com/sir_venger/blob_lite/pkg/blobproto"
	"github.com/spf13/cobra"
)

const (
	serverEnv     = "BLOB_SERVER"
	defaultServer = "http://127.0.0.1:3000"
)

type globalFlags struct {
	server   string
	progress bool
}

func newRootCmd() *cobra.Command {
	var g globalFlags
	root := &cobra.Command{
		Use:          "blobctl",
		Short:        "Client for the blob store HTTP API",
		SilenceUsage: true,
	}

	server := os.Getenv(serverEnv)
	if server == "" {
		server = defaultServer
	}
	root.PersistentFlags().StringVar(&g.server, "server", server, "blob store base URL (env "+serverEnv+")")
	root.PersistentFlags().BoolVar(&g.progress, "progress", false, "render a progress bar on stderr")

	client := func(cmd *cobra.Command) blobclient.Client {
		var opts []blobclient.Option
		if g.progress {
			opts = append(opts, blobclient.WithProgress(cmd.ErrOrStderr()))
		}
		return blobclient.New(g.server, opts...)
	}

	root.AddCommand(newUploadCmd(client), newGetCmd(client), newRmCmd(client))
	return root
}

type clientFactory func(cmd *cobra.Command) blobclient.Client

func newUploadCmd(client clientFactory) *cobra.Command {
	var field string
	cmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a file and print its descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			st, err := f.Stat()
			if err != nil {
				return err
			}

			info, err := client(cmd).Upload(cmd.Context(), blobclient.UploadRequest{
				Field:    field,
				FileName: filepath.Base(args[0]),
				Reader:   f,
				Size:     st.Size(),
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		},
	}
	cmd.Flags().StringVar(&field, "field", blobproto.DefaultFormField, "multipart field name")
	return cmd
}

func newGetCmd(client clientFactory) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Download a file to stdout or --output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			_, err := client(cmd).Download(cmd.Context(), args[0], w)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func newRmCmd(client clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client(cmd).Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}
