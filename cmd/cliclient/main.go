// cliclient is a CLI client for the Mandelbrot image server.
// It connects over tcp or websocket, requests the rendered image through irpc and saves it to a file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/url"
	"time"

	"github.com/coder/websocket"
	"github.com/marben/irpc"

	mandel "github.com/marben/tiled_mandel"
	"github.com/marben/tiled_mandel/sink"
)

// maxImageSize bounds a single websocket message from the server.
const maxImageSize = 64 << 20

var (
	errUnsupportedScheme = errors.New("unsupported address scheme")
	errEmptyImage        = errors.New("server sent an empty image")
)

// main is the entry point for the CLI client.
// It runs the client logic and logs any fatal errors.
func main() {
	addr := flag.String("addr", "tcp://localhost:8081", "server address, tcp://host:port or ws://host:port/ws")
	output := flag.String("o", "mandel.png", "file to store the image in, format chosen by extension")
	timeout := flag.Duration("timeout", time.Minute, "give up after this long")
	flag.Parse()

	log.Printf("Starting CLI client...")
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, *addr, *output); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

// run fetches the image from addr and saves it to filename.
// The output format follows the extension of filename.
func run(ctx context.Context, addr, filename string) error {
	if _, err := sink.ForPath(filename); err != nil {
		return err
	}

	log.Printf("Connecting to Mandelbrot server on %s...", addr)
	conn, err := dial(ctx, addr)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}

	ep := irpc.NewEndpoint(conn)
	defer ep.Close()
	// generated clients call with context.Background; closing the endpoint unblocks them
	stop := context.AfterFunc(ctx, func() { ep.Close() })
	defer stop()

	client, err := mandel.NewImgProviderIrpcClient(ep)
	if err != nil {
		return fmt.Errorf("failed to create ImgProvider client: %w", err)
	}

	log.Printf("Requesting fully rendered image from server...")
	img, err := client.GetImage()
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("client.GetImage: %w", context.Cause(ctx))
		}
		return fmt.Errorf("client.GetImage: %w", err)
	}
	if img.Rect.Empty() {
		return errEmptyImage
	}

	log.Printf("Saving image to %q...", filename)
	if err := sink.WriteFile(filename, &img); err != nil {
		return err
	}

	log.Printf("Image %v saved to %q", img.Rect.Size(), filename)
	return nil
}

// dial opens a stream connection for tcp:// or ws:// (wss://) addresses.
func dial(ctx context.Context, addr string) (net.Conn, error) {
	u, err := url.Parse(addr)
	if err != nil {
		return nil, fmt.Errorf("parse address: %w", err)
	}

	switch u.Scheme {
	case "tcp":
		var d net.Dialer
		return d.DialContext(ctx, "tcp", u.Host)
	case "ws", "wss":
		c, _, err := websocket.Dial(ctx, addr, nil)
		if err != nil {
			return nil, fmt.Errorf("websocket.Dial: %w", err)
		}
		c.SetReadLimit(maxImageSize)
		return websocket.NetConn(ctx, c, websocket.MessageBinary), nil
	}
	return nil, fmt.Errorf("%w: %q", errUnsupportedScheme, u.Scheme)
}
