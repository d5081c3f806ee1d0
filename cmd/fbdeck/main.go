// Command fbdeck runs the dual-screen system without a window: frames go to
// a Linux framebuffer and a Stream Deck supplies the buttons.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"github.com/user-none/duoscreen/frame"
	"github.com/user-none/duoscreen/hw/fb"
	"github.com/user-none/duoscreen/hw/streamdeck"
	"github.com/user-none/duoscreen/social"
	"github.com/user-none/duoscreen/ui/sound"
	"github.com/user-none/duoscreen/ui/storage"
	"github.com/user-none/duoscreen/ui/style"
	"github.com/user-none/duoscreen/ui/system"
	"github.com/user-none/duoscreen/ui/types"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml (default: user config dir)")
	device := flag.String("fb", "fb0", "framebuffer device name")
	serial := flag.String("serial", "", "Stream Deck serial number (default: first found)")
	flag.Parse()

	fs := afero.NewOsFs()
	path := *configPath
	if path == "" {
		p, err := storage.GetConfigPath()
		if err != nil {
			log.Fatalf("Failed to locate config: %v", err)
		}
		path = p
	}
	cfg := storage.LoadOrDefault(fs, path, os.Getenv)

	screen, err := fb.Open(fs, *device)
	if err != nil {
		log.Fatalf("Failed to open framebuffer: %v", err)
	}
	defer screen.Close()

	l := cfg.Layout()
	geom := screen.Geometry()
	log.Printf("Framebuffer %s: %dx%d %s", *device, geom.Width, geom.Height, geom.Format)
	log.Printf("Top screen: %dx%d", l.TopWidth, l.TopHeight)
	log.Printf("Bottom screen: %dx%d", l.BottomWidth, l.BottomHeight)

	store, err := social.Open(cfg.Network.Database, cfg.Network.UserID)
	if err != nil {
		log.Printf("Warning: failed to open social store, using demo data: %v", err)
		store = social.NewDemoStore(cfg.Network.UserID)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	icons := style.NewIconSet()
	queue := frame.NewQueue(frame.DefaultQueueSize)
	defer queue.Close()

	theme, ok := style.ThemeByID(cfg.Theme.Name)
	if !ok {
		theme = style.DefaultTheme()
	}
	deck, err := streamdeck.Open(*serial, queue, nil, icons, theme)
	if err != nil {
		log.Fatalf("Failed to open Stream Deck: %v", err)
	}
	defer deck.Close()
	go func() {
		if err := deck.Listen(ctx); err != nil {
			log.Printf("Stream Deck stopped: %v", err)
			stop()
		}
	}()

	var brightness types.BrightnessControl = deck
	if backlight, err := fb.FindBacklight(fs); err == nil {
		brightness = backlight
	} else {
		log.Printf("No panel backlight, using Stream Deck brightness: %v", err)
	}
	brightness.SetBrightness(cfg.Display.Brightness)

	sys := system.New(system.Options{
		Config:     cfg,
		Store:      store,
		FS:         fs,
		Volume:     sound.NewMixer(nil, cfg.Audio),
		Brightness: brightness,
		Icons:      icons,
		SaveConfig: func(c *storage.Config) error {
			return storage.SaveConfig(fs, path, c)
		},
	})
	sys.Nav().SetPresenter(screen)

	if err := frame.NewLoop(queue, sys, cfg.FrameDuration()).Run(ctx); err != nil {
		log.Printf("Frame loop failed: %v", err)
	}
	log.Println("Shutting down")
}
