package main

import (
	"fmt"
	"os"
	"strings"

	"ospl-go/internal/ospl"

	"github.com/spf13/cobra"
)

func printPhoto(p *ospl.Photo) {
	star := " "
	if p.Starred {
		star = "*"
	}
	fmt.Printf("#%d  %s %s  %s\n", p.ID(), star, strings.Repeat("+", p.Rating)+strings.Repeat(".", 5-p.Rating), p.DisplayName())
}

// photo command
var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Manage photos",
}

var photoImportCmd = &cobra.Command{
	Use:   "import PATH...",
	Short: "Import photos, or every file of a folder with --album",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		albumID, _ := cmd.Flags().GetInt64("album")

		a, err := newApp("ImportPhoto")
		if err != nil {
			return err
		}
		defer a.Close()

		imported, failed := 0, 0
		for _, arg := range args {
			info, err := os.Stat(arg)
			if err == nil && info.IsDir() && albumID != 0 {
				results, err := a.ImportFolderIntoAlbum(arg, albumID)
				if err != nil {
					return err
				}
				for _, r := range results {
					if r.Err != nil {
						fmt.Fprintf(os.Stderr, "%s: %v\n", r.Source, r.Err)
						failed++
					}
					if r.Photo != nil {
						imported++
					}
				}
				continue
			}

			var p *ospl.Photo
			if albumID != 0 {
				p, err = a.ImportPhotoIntoAlbum(arg, albumID)
			} else {
				p, err = a.ImportPhoto(arg)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", arg, err)
				failed++
			}
			if p != nil {
				imported++
				printPhoto(p)
			}
		}

		fmt.Printf("Imported %d photo(s)\n", imported)
		if failed > 0 {
			return fmt.Errorf("%d file(s) failed", failed)
		}
		return nil
	},
}

var photoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List photos",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListPhotos")
		if err != nil {
			return err
		}
		defer a.Close()

		photos, err := a.Library().ListPhotos()
		if err != nil {
			return err
		}
		if len(photos) == 0 {
			fmt.Println("No photos.")
			return nil
		}
		for _, p := range photos {
			printPhoto(p)
		}
		return nil
	},
}

var photoGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show a photo and the albums holding it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("GetPhoto")
		if err != nil {
			return err
		}
		defer a.Close()

		lib := a.Library()
		p, err := lib.GetPhoto(id)
		if err != nil {
			return err
		}
		albums, err := lib.ListAlbumsContainingPhoto(id)
		if err != nil {
			return err
		}

		fmt.Printf("ID:       %d\n", p.ID())
		fmt.Printf("Filename: %s\n", p.Filename)
		fmt.Printf("Name:     %s\n", p.DisplayName())
		fmt.Printf("Hash:     %s\n", p.Hash)
		fmt.Printf("Imported: %s\n", p.ImportedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Rating:   %d\n", p.Rating)
		fmt.Printf("Starred:  %t\n", p.Starred)
		for _, al := range albums {
			fmt.Printf("Album:    #%d %s/%s\n", al.ID(), al.Collection.Name, al.Name)
		}
		return nil
	},
}

var photoDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a photo from the library and every album",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("DeletePhoto")
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.Library().GetPhoto(id)
		if err != nil {
			return err
		}
		ok, err := confirm(cmd, fmt.Sprintf("delete photo %s", p.DisplayName()))
		if err != nil || !ok {
			return err
		}

		if err := a.DeletePhoto(id); err != nil {
			return err
		}
		fmt.Printf("Deleted photo %s\n", p.DisplayName())
		return nil
	},
}

var photoThumbnailsCmd = &cobra.Command{
	Use:   "thumbnails",
	Short: "List thumbnail paths",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListThumbnails")
		if err != nil {
			return err
		}
		defer a.Close()

		thumbs, err := a.Library().ListThumbnails()
		if err != nil {
			return err
		}
		for _, th := range thumbs {
			fmt.Printf("#%d  %s\n", th.PhotoID, th.Path)
		}
		return nil
	},
}

var photoRateCmd = &cobra.Command{
	Use:   "rate ID RATING",
	Short: "Rate a photo from 0 to 5",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		var rating int
		if _, err := fmt.Sscanf(args[1], "%d", &rating); err != nil {
			return fmt.Errorf("invalid rating %q", args[1])
		}

		a, err := newApp("SetPhotoRating")
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.SetPhotoRating(id, rating)
		if err != nil {
			return err
		}
		printPhoto(p)
		return nil
	},
}

var photoStarCmd = &cobra.Command{
	Use:   "star ID",
	Short: "Star a photo, or unstar it with --unset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		unset, _ := cmd.Flags().GetBool("unset")

		a, err := newApp("SetPhotoStarred")
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.SetPhotoStarred(id, !unset)
		if err != nil {
			return err
		}
		printPhoto(p)
		return nil
	},
}

func init() {
	photoCmd.AddCommand(photoImportCmd)
	photoCmd.AddCommand(photoListCmd)
	photoCmd.AddCommand(photoGetCmd)
	photoCmd.AddCommand(photoDeleteCmd)
	photoCmd.AddCommand(photoThumbnailsCmd)
	photoCmd.AddCommand(photoRateCmd)
	photoCmd.AddCommand(photoStarCmd)

	photoImportCmd.Flags().Int64P("album", "a", 0, "Also add the photos to this album")
	photoDeleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	photoStarCmd.Flags().Bool("unset", false, "Remove the star")
}
