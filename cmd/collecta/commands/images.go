// cmd/collecta/commands/images.go
package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Annany2002/collecta-backend/client"
	"github.com/Annany2002/collecta-backend/cmd/collecta/output"
	"github.com/Annany2002/collecta-backend/internal/media"
)

var maxUploadMB int64

// readUpload checks a local image the way the server will before sending it.
func readUpload(path string) (client.Upload, error) {
	f, err := os.Open(path)
	if err != nil {
		return client.Upload{}, err
	}
	defer f.Close()

	name := filepath.Base(path)
	img, err := media.ReadImageFrom(f, name, maxUploadMB<<20)
	if err != nil {
		return client.Upload{}, fmt.Errorf("%s: %w", name, err)
	}
	return client.Upload{Filename: name, Body: bytes.NewReader(img.Data)}, nil
}

// imageCmd builds "<parent> image <id> <file>" around one client upload call.
func imageCmd(resource string, upload func(ctx context.Context, c *client.Client, id int64, img client.Upload) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "image <id> <file>",
		Short: fmt.Sprintf("Upload the %s image (jpg, png or webp)", resource),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			img, err := readUpload(args[1])
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()
			path, err := upload(ctx, newClient(), id, img)
			if err != nil {
				return err
			}
			output.Success("Stored %s %d image at %s", resource, id, path)
			return nil
		},
	}
}

var pictureCmd = &cobra.Command{
	Use:   "picture <file>",
	Short: "Upload your profile picture",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := readUpload(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()
		u, err := newClient().SetProfilePicture(ctx, img)
		if err != nil {
			return err
		}
		output.Success("Stored profile picture at %s", u.ProfilePicture)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&maxUploadMB, "max-upload-mb", 5, "Largest image accepted for upload")

	meCmd.AddCommand(pictureCmd)
	collectionsCmd.AddCommand(imageCmd("collection", func(ctx context.Context, c *client.Client, id int64, img client.Upload) (string, error) {
		col, err := c.SetCollectionImage(ctx, id, img)
		if err != nil {
			return "", err
		}
		return col.Image, nil
	}))
	itemsCmd.AddCommand(imageCmd("item", func(ctx context.Context, c *client.Client, id int64, img client.Upload) (string, error) {
		it, err := c.SetItemImage(ctx, id, img)
		if err != nil {
			return "", err
		}
		return it.Image, nil
	}))
	eventsCmd.AddCommand(imageCmd("event", func(ctx context.Context, c *client.Client, id int64, img client.Upload) (string, error) {
		ev, err := c.SetEventImage(ctx, id, img)
		if err != nil {
			return "", err
		}
		return ev.Image, nil
	}))
}
