package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/verilab/verifeed/client"
	"github.com/verilab/verifeed/feed"
	"github.com/verilab/verifeed/model"
	"github.com/verilab/verifeed/profile"
	"github.com/verilab/verifeed/session"
	"github.com/verilab/verifeed/utils/dotenv"
	Flag "github.com/verilab/verifeed/utils/flag"
	Logger "github.com/verilab/verifeed/utils/log"
)

// app wires the workflow components together. The feed view keeps one
// Interaction per rendered post; a refresh rebuilds them all, discarding
// local likes and comments by design.
type app struct {
	session      *session.Manager
	synchronizer *feed.Synchronizer
	submitter    *feed.Submitter
	aggregator   *profile.Aggregator

	interactions []*feed.Interaction
	reader       *bufio.Reader
}

func main() {
	Flag.ParseFlags()
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}
	Logger.InitLogger()

	store, err := session.NewSQLiteStore(session.DefaultStatePath())
	if err != nil {
		Logger.Log.Fatalf("fail to open state store: %v", err)
	}
	defer store.Close()

	apiClient := client.NewClientFromEnv()
	sess := session.NewManager(apiClient, store)

	a := &app{
		session:      sess,
		synchronizer: feed.NewSynchronizer(apiClient, sess),
		submitter:    feed.NewSubmitter(apiClient, sess),
		aggregator:   profile.NewAggregator(apiClient, sess),
		reader:       bufio.NewReader(os.Stdin),
	}

	if sess.Resume() {
		fmt.Printf("Welcome back, %s.\n", sess.Current().User.Username)
	} else {
		fmt.Println("Welcome to verifeed. Use 'login' or 'signup' to get started.")
	}

	a.repl()
}

func (a *app) repl() {
	ctx := context.Background()
	for {
		fmt.Print("> ")
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "login":
			a.login(ctx)
		case "signup":
			a.signup(ctx)
		case "feed":
			a.showFeed(ctx)
		case "like", "dislike":
			a.react(fields)
		case "comment":
			a.comment(fields)
		case "comments":
			a.showComments(fields)
		case "submit":
			a.submit(ctx)
		case "profile":
			a.showProfile(ctx)
		case "logout":
			a.session.Logout()
			a.interactions = nil
			fmt.Println("Logged out.")
		case "quit", "exit":
			return
		default:
			fmt.Println("Commands: login signup feed like dislike comment comments submit profile logout quit")
		}
	}
}

func (a *app) prompt(label string) string {
	fmt.Print(label + ": ")
	line, err := a.reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func (a *app) login(ctx context.Context) {
	username := a.prompt("username")
	email := a.prompt("email")
	password := a.prompt("password")

	sess, err := a.session.Login(ctx, username, email, password)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Printf("Logged in as %s. Loading the community feed...\n", sess.User.Username)
	a.showFeed(ctx)
}

func (a *app) signup(ctx context.Context) {
	username := a.prompt("username")
	email := a.prompt("email")
	password := a.prompt("password")

	if err := a.session.SignUp(ctx, username, email, password); err != nil {
		fmt.Println("Sign up failed:", err.Error())
		return
	}
	fmt.Println("Account created. You can log in now.")
}

func (a *app) showFeed(ctx context.Context) {
	fmt.Println("Loading posts...")
	if err := a.synchronizer.Refresh(ctx); err != nil {
		fmt.Println("Failed to load posts. Please try again later.")
		return
	}

	posts := a.synchronizer.Posts()
	a.interactions = make([]*feed.Interaction, len(posts))
	for i := range posts {
		a.interactions[i] = feed.NewInteraction(posts[i], a.session, a.synchronizer.Reconcile)
	}

	if len(posts) == 0 {
		fmt.Println("No posts yet. Be the first to verify something!")
		return
	}
	for i := range posts {
		renderPost(i, posts[i])
	}
}

func (a *app) interactionAt(fields []string) (*feed.Interaction, bool) {
	if len(fields) < 2 {
		fmt.Println("Which post? Give its number from the feed.")
		return nil, false
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 0 || n >= len(a.interactions) {
		fmt.Println("No such post. Run 'feed' first.")
		return nil, false
	}
	return a.interactions[n], true
}

func (a *app) react(fields []string) {
	in, ok := a.interactionAt(fields)
	if !ok {
		return
	}
	if fields[0] == "like" {
		in.Like()
	} else {
		in.Dislike()
	}
	p := in.Post()
	fmt.Printf("%s  +%d / -%d\n", p.Title, p.Likes, p.Dislikes)
}

func (a *app) comment(fields []string) {
	in, ok := a.interactionAt(fields)
	if !ok {
		return
	}
	text := strings.Join(fields[2:], " ")
	before := len(in.Comments())
	in.AddComment(text)
	if len(in.Comments()) == before {
		fmt.Println("Comment not added (log in and write something first).")
		return
	}
	fmt.Println("Comment added.")
}

func (a *app) showComments(fields []string) {
	in, ok := a.interactionAt(fields)
	if !ok {
		return
	}
	if !in.ToggleCommentsVisible() {
		return
	}
	comments := in.Comments()
	if len(comments) == 0 {
		fmt.Println("No comments yet.")
		return
	}
	for _, c := range comments {
		fmt.Printf("  %s (%s): %s\n", c.AuthorName, c.Timestamp, c.Text)
	}
}

func (a *app) submit(ctx context.Context) {
	kind := a.prompt("kind (url/text/image)")
	title := a.prompt("title")

	sub := feed.Submission{Title: title}
	switch kind {
	case "url":
		sub.Kind = model.KindUrl
		sub.Content = a.prompt("url")
	case "text":
		sub.Kind = model.KindText
		sub.Content = a.prompt("text")
	case "image":
		sub.Kind = model.KindImage
		path := a.prompt("image path")
		file, err := os.Open(path)
		if err != nil {
			fmt.Println("Cannot read that file:", err.Error())
			return
		}
		defer file.Close()
		sub.ImageName = file.Name()
		sub.Image = file
	default:
		fmt.Println("Unknown kind.")
		return
	}

	if err := a.submitter.Submit(ctx, sub); err != nil {
		// The form stays populated in a real UI; here the user just
		// re-runs submit.
		fmt.Println(err.Error())
		return
	}
	fmt.Println("Uploaded for verification. Refreshing the feed...")
	a.showFeed(ctx)
}

func (a *app) showProfile(ctx context.Context) {
	posts, err := a.aggregator.LoadOwnPosts(ctx)
	if err != nil {
		fmt.Println("Could not load your posts right now.")
		return
	}

	stats := profile.ComputeStats(posts)
	fmt.Printf("Posts: %d  Liked: %d  Links: %d  Text: %d\n",
		stats.Total, stats.Liked, stats.WithUrl, stats.TextOnly)
	for i := range posts {
		p := &posts[i]
		fmt.Printf("  %s — %s (%s)\n", p.Title, truncate(p.DisplayContent(), 60), p.DateLabel(nowFunc()))
	}
}
