package main

import (
	"fmt"

	"ospl-go/internal/ospl"

	"github.com/spf13/cobra"
)

func printCollection(c *ospl.Collection) {
	fmt.Printf("#%d  %-20s  %s  %s\n", c.ID(), c.Name, c.CreatedAt.Local().Format("2006-01-02 15:04:05"), c.Comment)
}

func printAlbum(a *ospl.Album) {
	fmt.Printf("#%d  %-20s  in %-20s  %s\n", a.ID(), a.Name, a.Collection.Name, a.Comment)
}

// collection command
var collectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "Manage collections",
}

var collectionCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		comment, _ := cmd.Flags().GetString("comment")

		a, err := newApp("CreateCollection")
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.CreateCollection(args[0], comment)
		if err != nil {
			return err
		}
		printCollection(c)
		return nil
	},
}

var collectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListCollections")
		if err != nil {
			return err
		}
		defer a.Close()

		collections, err := a.Library().ListCollections()
		if err != nil {
			return err
		}
		if len(collections) == 0 {
			fmt.Println("No collections.")
			return nil
		}
		for _, c := range collections {
			printCollection(c)
		}
		return nil
	},
}

var collectionGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("GetCollection")
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.Library().GetCollection(id)
		if err != nil {
			return err
		}
		fmt.Printf("ID:       %d\n", c.ID())
		fmt.Printf("Name:     %s\n", c.Name)
		fmt.Printf("Comment:  %s\n", c.Comment)
		fmt.Printf("Created:  %s\n", c.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Modified: %s\n", c.ModifiedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Path:     %s\n", c.Path())
		return nil
	},
}

var collectionRenameCmd = &cobra.Command{
	Use:   "rename ID NAME",
	Short: "Rename a collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("RenameCollection")
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.RenameCollection(id, args[1])
		if err != nil {
			return err
		}
		printCollection(c)
		return nil
	},
}

var collectionDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a collection and its albums",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("DeleteCollection")
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.Library().GetCollection(id)
		if err != nil {
			return err
		}
		ok, err := confirm(cmd, fmt.Sprintf("delete collection %q and all its albums", c.Name))
		if err != nil || !ok {
			return err
		}

		if err := a.DeleteCollection(id); err != nil {
			return err
		}
		fmt.Printf("Deleted collection %s\n", c.Name)
		return nil
	},
}

var collectionAlbumsCmd = &cobra.Command{
	Use:   "albums ID",
	Short: "List the albums of a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("ListAlbumsInCollection")
		if err != nil {
			return err
		}
		defer a.Close()

		albums, err := a.Library().ListAlbumsInCollection(id)
		if err != nil {
			return err
		}
		if len(albums) == 0 {
			fmt.Println("No albums.")
			return nil
		}
		for _, al := range albums {
			printAlbum(al)
		}
		return nil
	},
}

func init() {
	collectionCmd.AddCommand(collectionCreateCmd)
	collectionCmd.AddCommand(collectionListCmd)
	collectionCmd.AddCommand(collectionGetCmd)
	collectionCmd.AddCommand(collectionRenameCmd)
	collectionCmd.AddCommand(collectionDeleteCmd)
	collectionCmd.AddCommand(collectionAlbumsCmd)

	collectionCreateCmd.Flags().StringP("comment", "c", "", "Free-form comment")
	collectionDeleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
