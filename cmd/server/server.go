package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/marben/irpc"

	mandel "github.com/marben/tiled_mandel"
	"github.com/marben/tiled_mandel/dispatch"
	"github.com/marben/tiled_mandel/palette"
	"github.com/marben/tiled_mandel/render"
	"github.com/marben/tiled_mandel/sink"
)

// main is the entry point for the Mandelbrot server.
// The image is rendered once at startup; every client gets the same finished buffer.
func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	regionName := flag.String("region", "seahorse", "landmark to render")
	workers := flag.Int("workers", 4, fmt.Sprintf("number of workers, one of %v", dispatch.SupportedWorkers))
	format := flag.String("format", "png", "encoding served at /image: png, ppm, png.zst or ppm.zst")
	tcpAddr := flag.String("tcp", ":8081", "irpc tcp listen address")
	httpPort := flag.Int("http", 8080, "http and websocket port")
	flag.Parse()

	region, ok := mandel.Regions[*regionName]
	if !ok {
		return fmt.Errorf("unknown region %q", *regionName)
	}
	enc, err := sink.ByName(*format)
	if err != nil {
		return err
	}

	// job implements mandel.ImgProvider, so it backs both the irpc service and /image
	job := &dispatch.Job{
		Window:   region.Window(1920, 1080, mandel.Reference.Aspect),
		Workers:  *workers,
		Renderer: render.RendererImpl{Table: palette.Reference},
	}

	payload, err := encodeImage(job, enc)
	if err != nil {
		return err
	}
	log.Printf("serving %d byte %s image at /image", len(payload), enc.Ext())

	irpcServer := newIrpcServer(job)

	// TCP
	log.Printf("tcp listening on %s", *tcpAddr)
	tcpListener, err := net.Listen("tcp", *tcpAddr)
	if err != nil {
		return fmt.Errorf("net.Listen: %w", err)
	}

	// WEBSOCKET
	websocketListener, httpServer := webServer(context.Background(), *httpPort, payload, enc)

	go func() {
		if err := httpServer.ListenAndServe(); err != nil {
			log.Fatalf("httpServer: %v", err)
		}
	}()

	// irpcServer can serve multiple listeners. In this case both tcp and websocket
	go func() {
		if err := irpcServer.Serve(tcpListener); err != nil {
			log.Fatalf("server.Serve tcp: %v", err)
		}
	}()
	go func() {
		if err := irpcServer.Serve(websocketListener); err != nil {
			log.Fatalf("server.Serve ws: %v", err)
		}
	}()

	log.Printf("mb server waiting for tcp and websocket connections")
	select {}
}

// newIrpcServer provides p as mandel.ImgProvider to every connected endpoint.
func newIrpcServer(p mandel.ImgProvider) *irpc.Server {
	s := irpc.NewServer(irpc.WithOnConnect(func(ep *irpc.Endpoint) {
		log.Printf("got connection from: %s", ep.RemoteAddr())
	}))
	s.AddService(mandel.NewImgProviderIrpcService(p))
	return s
}

// encodeImage renders through p and encodes the result with s.
func encodeImage(p mandel.ImgProvider, s sink.Sink) ([]byte, error) {
	start := time.Now()
	img, err := p.GetImage()
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	log.Printf("render took %s", time.Since(start))

	var out bytes.Buffer
	if err := s.Encode(&out, &img); err != nil {
		return nil, &sink.Error{Err: err}
	}
	return out.Bytes(), nil
}
