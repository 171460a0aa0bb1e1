package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// maxAuthorAttempts bounds the interactive author prompt.
const maxAuthorAttempts = 3

// NewGetCommand reads data from the blog.
func NewGetCommand() *cobra.Command {
	var (
		allUsers   bool
		userID     int64
		allPosts   bool
		postID     int64
		formatFlag string
		spacing    int
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "read data from the blog",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseFormat(formatFlag)
			if err != nil {
				return err
			}

			client := NewClient(serverURL(cmd))
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			switch {
			case allUsers:
				if format != FormatJSON {
					return printRaw(cmd, client, "/user", format)
				}
				users, err := client.GetUsers(ctx)
				if err != nil {
					return err
				}
				rows := make([]map[string]string, 0, len(users))
				for _, user := range users {
					rows = append(rows, userRow(user))
				}
				NewTable(out, []string{"id", "name", "email"}, spacing).Write(rows)

			case userID > 0:
				if format != FormatJSON {
					return printRaw(cmd, client, fmt.Sprintf("/user/%d", userID), format)
				}
				user, err := client.GetUser(ctx, userID)
				if err != nil {
					return err
				}
				NewTable(out, []string{"id", "name", "email"}, spacing).
					Write([]map[string]string{userRow(*user)})

			case allPosts:
				if format != FormatJSON {
					return printRaw(cmd, client, "/post", format)
				}
				posts, err := client.GetPosts(ctx)
				if err != nil {
					return err
				}
				rows := make([]map[string]string, 0, len(posts))
				for _, post := range posts {
					rows = append(rows, postRow(post))
				}
				table := NewTable(out, []string{"id", "title", "body", "author_id"}, spacing)
				table.AddTrimmer("title", spacing-2)
				table.AddTrimmer("body", spacing-2)
				table.Write(rows)

			case postID > 0:
				if format != FormatJSON {
					return printRaw(cmd, client, fmt.Sprintf("/post/%d", postID), format)
				}
				post, err := client.GetPost(ctx, postID)
				if err != nil {
					return err
				}
				table := NewTable(out, []string{"id", "title", "body", "author_id"}, spacing)
				table.AddTrimmer("title", spacing-2)
				table.AddTrimmer("body", spacing-2)
				table.Write([]map[string]string{postRow(*post)})

			default:
				return errors.New("nothing to get: pass --users, --user, --posts or --post")
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&allUsers, "users", "u", false, "get all users")
	cmd.Flags().Int64VarP(&userID, "user", "U", 0, "get a user by id")
	cmd.Flags().BoolVarP(&allPosts, "posts", "p", false, "get all blog posts")
	cmd.Flags().Int64VarP(&postID, "post", "P", 0, "get a blog post by id")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "json", "response format: html, json or response")
	cmd.Flags().IntVarP(&spacing, "spacing", "s", 12, "column width for table output")

	return cmd
}

func printRaw(cmd *cobra.Command, client *Client, path string, format Format) error {
	raw, err := client.FetchRaw(cmd.Context(), path, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), raw)
	return nil
}

// NewWriteCommand adds a post to the blog.
func NewWriteCommand() *cobra.Command {
	var (
		title       string
		body        string
		author      string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "write",
		Short: "add a post to the blog",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := NewClient(serverURL(cmd))

			if interactive {
				var err error
				title, body, author, err = promptPost(cmd, client)
				if err != nil {
					return err
				}
			}

			message, err := client.CreatePost(cmd.Context(), title, body, author)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "post title")
	cmd.Flags().StringVarP(&body, "body", "b", "", "post body")
	cmd.Flags().StringVarP(&author, "author", "a", "", "author id")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "prompt for title, body and author")

	return cmd
}

// promptPost gathers a post from the console. The author prompt shows the
// known users and accepts a limited number of wrong answers before giving
// up.
func promptPost(cmd *cobra.Command, client *Client) (title, body, author string, err error) {
	reader := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	fmt.Fprint(out, "Give your post a title: ")
	title, err = readLine(reader)
	if err != nil {
		return "", "", "", err
	}

	fmt.Fprint(out, "What do you want to say: ")
	body, err = readLine(reader)
	if err != nil {
		return "", "", "", err
	}

	users, err := client.GetUsers(cmd.Context())
	if err != nil {
		return "", "", "", err
	}

	for attempt := 0; attempt < maxAuthorAttempts; attempt++ {
		fmt.Fprintln(out, "Enter an author id:")
		for _, user := range users {
			fmt.Fprintf(out, "%s) %s\n", user.ID, user.Name)
		}
		fmt.Fprint(out, "Choice: ")

		choice, err := readLine(reader)
		if err != nil {
			return "", "", "", err
		}
		for _, user := range users {
			if choice == user.ID {
				return title, body, user.ID, nil
			}
		}
		fmt.Fprintf(out, "%q is not a known author id\n", choice)
	}

	return "", "", "", fmt.Errorf("no valid author id after %d attempts", maxAuthorAttempts)
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
