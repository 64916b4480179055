package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// album command
var albumCmd = &cobra.Command{
	Use:   "album",
	Short: "Manage albums",
}

var albumCreateCmd = &cobra.Command{
	Use:   "create COLLECTION_ID NAME",
	Short: "Create an album in a collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		collectionID, err := parseID(args[0])
		if err != nil {
			return err
		}
		comment, _ := cmd.Flags().GetString("comment")

		a, err := newApp("CreateAlbum")
		if err != nil {
			return err
		}
		defer a.Close()

		al, err := a.CreateAlbum(collectionID, args[1], comment)
		if err != nil {
			return err
		}
		printAlbum(al)
		return nil
	},
}

var albumGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show an album",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("GetAlbum")
		if err != nil {
			return err
		}
		defer a.Close()

		al, err := a.Library().GetAlbum(id)
		if err != nil {
			return err
		}
		fmt.Printf("ID:         %d\n", al.ID())
		fmt.Printf("Name:       %s\n", al.Name)
		fmt.Printf("Collection: #%d %s\n", al.Collection.ID(), al.Collection.Name)
		fmt.Printf("Comment:    %s\n", al.Comment)
		fmt.Printf("Created:    %s\n", al.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Modified:   %s\n", al.ModifiedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Path:       %s\n", al.Path())
		return nil
	},
}

var albumRenameCmd = &cobra.Command{
	Use:   "rename ID NAME",
	Short: "Rename an album",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("RenameAlbum")
		if err != nil {
			return err
		}
		defer a.Close()

		al, err := a.RenameAlbum(id, args[1])
		if err != nil {
			return err
		}
		printAlbum(al)
		return nil
	},
}

var albumMoveCmd = &cobra.Command{
	Use:   "move ID COLLECTION_ID",
	Short: "Move an album to another collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		collectionID, err := parseID(args[1])
		if err != nil {
			return err
		}

		a, err := newApp("MoveAlbum")
		if err != nil {
			return err
		}
		defer a.Close()

		al, err := a.MoveAlbum(id, collectionID)
		if err != nil {
			return err
		}
		printAlbum(al)
		return nil
	},
}

var albumDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete an album, keeping its photos",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("DeleteAlbum")
		if err != nil {
			return err
		}
		defer a.Close()

		al, err := a.Library().GetAlbum(id)
		if err != nil {
			return err
		}
		ok, err := confirm(cmd, fmt.Sprintf("delete album %q", al.Name))
		if err != nil || !ok {
			return err
		}

		if err := a.DeleteAlbum(id); err != nil {
			return err
		}
		fmt.Printf("Deleted album %s\n", al.Name)
		return nil
	},
}

var albumPhotosCmd = &cobra.Command{
	Use:   "photos ID",
	Short: "List the photos of an album",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("ListPhotosInAlbum")
		if err != nil {
			return err
		}
		defer a.Close()

		photos, err := a.Library().ListPhotosInAlbum(id)
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

var albumAssignCmd = &cobra.Command{
	Use:   "assign ALBUM_ID PHOTO_ID...",
	Short: "Add photos to an album",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		albumID, err := parseID(args[0])
		if err != nil {
			return err
		}
		photoIDs := make([]int64, 0, len(args)-1)
		for _, arg := range args[1:] {
			id, err := parseID(arg)
			if err != nil {
				return err
			}
			photoIDs = append(photoIDs, id)
		}

		a, err := newApp("AssignPhotoToAlbum")
		if err != nil {
			return err
		}
		defer a.Close()

		for _, id := range photoIDs {
			if err := a.AssignPhotoToAlbum(id, albumID); err != nil {
				return err
			}
		}
		fmt.Printf("Assigned %d photo(s)\n", len(photoIDs))
		return nil
	},
}

func init() {
	albumCmd.AddCommand(albumCreateCmd)
	albumCmd.AddCommand(albumGetCmd)
	albumCmd.AddCommand(albumRenameCmd)
	albumCmd.AddCommand(albumMoveCmd)
	albumCmd.AddCommand(albumDeleteCmd)
	albumCmd.AddCommand(albumPhotosCmd)
	albumCmd.AddCommand(albumAssignCmd)

	albumCreateCmd.Flags().StringP("comment", "c", "", "Free-form comment")
	albumDeleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
