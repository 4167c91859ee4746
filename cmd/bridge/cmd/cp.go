// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package cmd

import (
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zeebo/errs"

	"storj.io/bridge/internal/process"
)

var cpCmd = &cobra.Command{
	Use:   "cp <source> <destination>",
	Short: "Copy a file to or from a bucket",
	Long: `Copy a file to or from a bucket.

Upload:   cp /path/to/file storj://<bucket-id>
Download: cp storj://<bucket-id>/<file-id> /path/to/file`,
	RunE: copyFile,
}

func init() {
	RootCmd.AddCommand(cpCmd)
}

func copyFile(cmd *cobra.Command, args []string) error {
	ctx := process.Ctx(cmd)

	if len(args) < 2 {
		return errs.New("No source or destination specified")
	}

	env, err := getEnv()
	if err != nil {
		return err
	}

	src, err := url.Parse(args[0])
	if err != nil {
		return errs.Wrap(err)
	}

	if src.Scheme == "" {
		// upload
		dst, err := url.Parse(args[1])
		if err != nil {
			return errs.Wrap(err)
		}
		if dst.Scheme != "storj" || dst.Host == "" {
			return errs.New("Destination must be storj://<bucket-id>")
		}

		f, err := os.Open(args[0])
		if err != nil {
			return errs.Wrap(err)
		}
		defer func() { _ = f.Close() }()

		mimetype := mime.TypeByExtension(filepath.Ext(args[0]))
		if mimetype == "" {
			mimetype = "application/octet-stream"
		}

		uploader, err := getUploader(env)
		if err != nil {
			return err
		}

		file, err := uploader.Store(ctx, dst.Host, filepath.Base(args[0]), mimetype, f)
		if err != nil {
			return err
		}

		fmt.Println("Stored", file.ID, "in bucket", dst.Host)
		return nil
	}

	// download
	fileID := strings.TrimPrefix(src.Path, "/")
	if src.Scheme != "storj" || src.Host == "" || fileID == "" {
		return errs.New("Source must be storj://<bucket-id>/<file-id>")
	}

	if _, err := os.Stat(args[1]); err == nil {
		return errs.New("Destination %s already exists", args[1])
	}

	f, err := os.Create(args[1])
	if err != nil {
		return errs.Wrap(err)
	}
	defer func() { _ = f.Close() }()

	downloader, err := getDownloader(env)
	if err != nil {
		return err
	}

	if err := downloader.Resolve(ctx, src.Host, fileID, f); err != nil {
		// do not leave a partial download behind
		_ = os.Remove(args[1])
		return err
	}

	fmt.Println("Downloaded", fileID, "to", args[1])
	return nil
}
