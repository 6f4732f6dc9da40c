package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var postsRender bool

var postCmd = &cobra.Command{
	Use:   "post <text>",
	Short: "Add a post to the bulletin board",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPost,
}

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Show bulletin board posts, newest first",
	RunE:  runPosts,
}

func init() {
	postsCmd.Flags().BoolVar(&postsRender, "render", false, "Render posts as markdown")
	rootCmd.AddCommand(postCmd, postsCmd)
}

func runPost(cmd *cobra.Command, args []string) error {
	_, warning, err := boardService().Post(strings.Join(args, " "))
	if err != nil {
		return err
	}
	printWarning(cmd, warning)
	fmt.Fprintln(cmd.OutOrStdout(), "Posted!")
	return nil
}

func runPosts(cmd *cobra.Command, args []string) error {
	posts, warning, err := boardService().List()
	if err != nil {
		return err
	}
	printWarning(cmd, warning)

	out := cmd.OutOrStdout()
	if len(posts) == 0 {
		fmt.Fprintln(out, "No posts yet.")
		return nil
	}

	for i, p := range posts {
		text := p.Text
		if postsRender {
			if rendered, err := glamour.Render(text, "auto"); err == nil {
				text = strings.TrimRight(rendered, "\n")
			}
		}
		fmt.Fprintf(out, "#%d\n%s\n\n", i+1, text)
	}
	return nil
}
