// golens is a raw command-line client for the same API the TUI uses.
// It is useful for scripting and for poking at queries without the UI.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/lenscope/lenscope/internal/config"
	"github.com/lenscope/lenscope/internal/domain"
	"github.com/lenscope/lenscope/internal/lens"
	"github.com/lenscope/lenscope/internal/log"
	"github.com/lenscope/lenscope/internal/search"
	"github.com/lenscope/lenscope/internal/service"
	"github.com/lenscope/lenscope/internal/store"
)

const usage = `Usage: golens [flags] <command> [args]

Commands:
  accounts <query>          search accounts
  account <handle|0x..>     show one account
  stats <0x..>              show account counters
  resolve <handle>          resolve a handle to an address
  posts [handle]            list posts, optionally by author handle
  post <id>                 show one post
  follow <0x..>             follow an account
  unfollow <0x..>           unfollow an account
  like <post-id>            upvote a post
  unlike <post-id>          remove an upvote
  repost <post-id>          repost a post
  login <handle|0x..>       sign in via wallet approval
  token                     paste tokens directly (no echo)
  logout                    revoke and clear the session
  whoami                    show the signed-in account

Flags:
  -json                     print raw JSON instead of text
  -page-size <ten|fifty>    page size for list commands
  -cursor <cursor>          start list commands at a cursor
  -match <query>            rank fetched results client-side
`

type cli struct {
	client *lens.Client
	store  *store.Store

	jsonOut  bool
	pageSize string
	cursor   string
	match    string
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var c cli
	flag.BoolVar(&c.jsonOut, "json", false, "print raw JSON")
	flag.StringVar(&c.pageSize, "page-size", "ten", "page size for list commands")
	flag.StringVar(&c.cursor, "cursor", "", "start list commands at a cursor")
	flag.StringVar(&c.match, "match", "", "rank fetched results client-side")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := log.Null()
	c.client = lens.NewClient(cfg.API.Endpoint, cfg.API.AppAddress, logger)

	c.store, err = store.NewStore(config.DataPath(), cfg.API.Endpoint)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer c.store.Close()

	// Adopt the TUI's session so authenticated commands work
	if session, ok := c.store.LoadSession(); ok && session.Valid(time.Now()) {
		c.client.SetToken(session.AccessToken)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return c.dispatch(ctx, args[0], args[1:])
}

func (c *cli) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "accounts":
		return c.cmdAccounts(ctx, args)
	case "account":
		return c.cmdAccount(ctx, args)
	case "stats":
		return c.cmdStats(ctx, args)
	case "resolve":
		return c.cmdResolve(ctx, args)
	case "posts":
		return c.cmdPosts(ctx, args)
	case "post":
		return c.cmdPost(ctx, args)
	case "follow", "unfollow", "like", "unlike", "repost":
		return c.cmdMutate(ctx, command, args)
	case "login":
		return c.cmdLogin(args)
	case "token":
		return c.cmdToken(ctx)
	case "logout":
		return c.cmdLogout(ctx)
	case "whoami":
		return c.cmdWhoami()
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func (c *cli) cmdAccounts(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("accounts: query required")
	}
	filter := domain.AccountFilter{
		SearchBy: strings.Join(args, " "),
		OrderBy:  domain.AccountsOrderBestMatch,
		PageSize: domain.ParsePageSize(c.pageSize),
	}
	page, err := c.client.QueryAccounts(ctx, filter, c.cursor)
	if err != nil {
		return err
	}
	if c.match != "" {
		matched := make([]domain.Account, 0, len(page.Items))
		for _, m := range search.Accounts(c.match, page.Items) {
			matched = append(matched, page.Items[m.Index])
		}
		page.Items = matched
	}
	if c.jsonOut {
		return printJSON(page)
	}
	for _, account := range page.Items {
		printAccountLine(account)
	}
	if page.NextCursor != "" {
		fmt.Printf("\nnext cursor: %s\n", page.NextCursor)
	}
	return nil
}

func (c *cli) cmdAccount(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("account: handle or address required")
	}
	address, localName := splitIdentifier(args[0])
	account, err := c.client.QueryAccount(ctx, address, localName)
	if err != nil {
		return err
	}
	if c.jsonOut {
		return printJSON(account)
	}
	printAccountLine(account)
	if account.Bio != "" {
		fmt.Printf("  %s\n", account.Bio)
	}
	fmt.Printf("  created %s\n", account.CreatedAt.Format("2006-01-02"))
	return nil
}

func (c *cli) cmdStats(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("stats: address required")
	}
	stats, err := c.client.QueryAccountStats(ctx, args[0])
	if err != nil {
		return err
	}
	if c.jsonOut {
		return printJSON(stats)
	}
	fmt.Printf("followers: %d\nfollowing: %d\nposts: %d\n",
		stats.Followers, stats.Following, stats.Posts)
	return nil
}

func (c *cli) cmdResolve(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("resolve: handle required")
	}
	address, err := c.client.ResolveHandle(ctx, strings.TrimPrefix(args[0], "@"))
	if err != nil {
		return err
	}
	fmt.Println(address)
	return nil
}

func (c *cli) cmdPosts(ctx context.Context, args []string) error {
	filter := domain.PostFilter{PageSize: domain.ParsePageSize(c.pageSize)}
	if len(args) > 0 {
		address, localName := splitIdentifier(args[0])
		if localName != "" {
			resolved, err := c.client.ResolveHandle(ctx, localName)
			if err != nil {
				return err
			}
			address = resolved
		}
		filter.Authors = []string{address}
	}
	page, err := c.client.QueryPosts(ctx, filter, c.cursor)
	if err != nil {
		return err
	}
	if c.match != "" {
		matched := make([]domain.Post, 0, len(page.Items))
		for _, m := range search.Posts(c.match, page.Items) {
			matched = append(matched, page.Items[m.Index])
		}
		page.Items = matched
	}
	if c.jsonOut {
		return printJSON(page)
	}
	for _, post := range page.Items {
		printPostLine(post)
	}
	if page.NextCursor != "" {
		fmt.Printf("\nnext cursor: %s\n", page.NextCursor)
	}
	return nil
}

func (c *cli) cmdPost(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("post: id required")
	}
	post, err := c.client.QueryPost(ctx, args[0])
	if err != nil {
		return err
	}
	if c.jsonOut {
		return printJSON(post)
	}
	printPostLine(post)
	fmt.Printf("  upvotes %d · comments %d · reposts %d · quotes %d\n",
		post.Stats.Upvotes, post.Stats.Comments, post.Stats.Reposts, post.Stats.Quotes)
	return nil
}

func (c *cli) cmdMutate(ctx context.Context, command string, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s: target required", command)
	}
	interactions := service.NewInteractionService(c.client, log.Null())
	if err := interactions.Execute(ctx, domain.ActionKind(command), args[0]); err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}

func (c *cli) cmdLogin(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("login: handle or address required")
	}

	// The approval window is longer than the per-command timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	challenge, err := c.client.RequestChallenge(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to start login: %w", err)
	}

	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("  Go to: %s\n", challenge.VerifyURL)
	fmt.Printf("  Match code: %s\n", challenge.Code)
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()
	fmt.Println("Waiting for approval...")

	session, err := c.client.WaitForApproval(ctx, challenge.ID, 5*time.Minute)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := c.store.SaveSession(session); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	if err := config.SaveAccount(session.AccountAddress, strings.TrimPrefix(args[0], "@")); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Printf("✓ Signed in as %s\n", session.AccountAddress)
	return nil
}

// cmdToken installs tokens pasted from another tool. Input is read without
// echo so the tokens stay out of the scrollback.
func (c *cli) cmdToken(ctx context.Context) error {
	fmt.Print("Refresh token: ")
	tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}

	// Exchange immediately; this validates the token and yields the
	// account address and expiry
	session, err := c.client.Refresh(ctx, strings.TrimSpace(string(tokenBytes)))
	if err != nil {
		return fmt.Errorf("token rejected: %w", err)
	}

	if err := c.store.SaveSession(session); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	fmt.Printf("✓ Signed in as %s\n", session.AccountAddress)
	return nil
}

func (c *cli) cmdLogout(ctx context.Context) error {
	session, ok := c.store.LoadSession()
	if !ok {
		fmt.Println("not signed in")
		return nil
	}
	if err := c.client.Logout(ctx, session); err != nil {
		fmt.Fprintf(os.Stderr, "warning: server-side revoke failed: %v\n", err)
	}
	if err := c.store.ClearSession(); err != nil {
		return err
	}
	fmt.Println("signed out")
	return nil
}

func (c *cli) cmdWhoami() error {
	session, ok := c.store.LoadSession()
	if !ok {
		fmt.Println("not signed in")
		return nil
	}
	status := "expired"
	if session.Valid(time.Now()) {
		status = "valid until " + session.ExpiresAt.Format(time.RFC3339)
	}
	fmt.Printf("%s (%s)\n", session.AccountAddress, status)
	return nil
}

// splitIdentifier classifies an argument as address or local name
func splitIdentifier(arg string) (address, localName string) {
	if strings.HasPrefix(arg, "0x") {
		return arg, ""
	}
	return "", strings.TrimPrefix(arg, "@")
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printAccountLine(account domain.Account) {
	fmt.Printf("%s %s %s\n", account.Address, account.Handle(), account.DisplayName())
}

func printPostLine(post domain.Post) {
	content := strings.ReplaceAll(post.Content, "\n", " ")
	if r := []rune(content); len(r) > 80 {
		content = string(r[:80]) + "…"
	}
	fmt.Printf("%s [%s] %s: %s\n", post.ID, post.Kind, post.Author.Handle(), content)
}
