package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"pet-playground/internal/platform/httpclient"
)

const usage = `usage: petctl [-url URL] <command> [args]

commands:
  spawn <type> <color> [name]   spawn a pet
  list                          list pets as type,name,color
  roll-call                     every pet says hello
  delete <type> <color> <name>  remove a pet
  reset                         remove every pet
  pause | resume                pause or resume the panel
  throw [x]                     throw the ball (x in px needs throw-with-mouse)
  tick                          advance one frame
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "petctl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("petctl", flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.Usage = func() { fmt.Fprint(stdout, usage) }

	baseURL := fs.String("url", os.Getenv("PETS_API_URL"), "pets API base url (env PETS_API_URL)")
	timeout := fs.Duration("timeout", 5*time.Second, "request timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return fmt.Errorf("missing command")
	}

	hc, err := httpclient.New(*baseURL, *timeout)
	if err != nil {
		return err
	}
	c := &panelClient{http: hc}

	cmd, params := rest[0], rest[1:]
	switch cmd {
	case "spawn":
		if len(params) < 2 {
			return fmt.Errorf("spawn needs <type> <color> [name]")
		}
		name := ""
		if len(params) > 2 {
			name = strings.Join(params[2:], " ")
		}
		v, err := c.spawn(ctx, params[0], params[1], name)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s %s joined the panel\n", v.Emoji, v.Name)

	case "list":
		text, err := c.list(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, text)

	case "roll-call":
		lines, err := c.rollCall(ctx)
		if err != nil {
			return err
		}
		for _, l := range lines {
			fmt.Fprintln(stdout, l)
		}

	case "delete":
		if len(params) < 3 {
			return fmt.Errorf("delete needs <type> <color> <name>")
		}
		text, err := c.delete(ctx, params[0], params[1], strings.Join(params[2:], " "))
		if text != "" {
			fmt.Fprintln(stdout, text)
		}
		return err

	case "reset", "pause", "resume":
		return c.post(ctx, cmd)

	case "throw":
		var x *float64
		if len(params) > 0 {
			v, err := strconv.ParseFloat(params[0], 64)
			if err != nil {
				return fmt.Errorf("invalid x %q", params[0])
			}
			x = &v
		}
		n, err := c.throw(ctx, x)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%d pets chasing the ball\n", n)

	case "tick":
		ran, err := c.tick(ctx)
		if err != nil {
			return err
		}
		if !ran {
			fmt.Fprintln(stdout, "panel not ready or paused")
		}

	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}
