package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/afero"

	"github.com/user-none/duoscreen/frame"
	"github.com/user-none/duoscreen/hw/fb"
	"github.com/user-none/duoscreen/hw/streamdeck"
	"github.com/user-none/duoscreen/social"
	"github.com/user-none/duoscreen/ui"
	"github.com/user-none/duoscreen/ui/sound"
	"github.com/user-none/duoscreen/ui/storage"
	"github.com/user-none/duoscreen/ui/style"
	"github.com/user-none/duoscreen/ui/system"
	"github.com/user-none/duoscreen/ui/types"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml (default: user config dir)")
	themeFlag := flag.String("theme", "", "theme: default, dark, nintendo, or forest")
	fullscreen := flag.Bool("fullscreen", false, "start fullscreen")
	useDeck := flag.Bool("streamdeck", false, "use an attached Stream Deck as hardware buttons")
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
	if *themeFlag != "" {
		cfg.Theme.Name = *themeFlag
	}
	if *fullscreen {
		cfg.Display.Fullscreen = true
	}

	store, err := social.Open(cfg.Network.Database, cfg.Network.UserID)
	if err != nil {
		log.Printf("Warning: failed to open social store, using demo data: %v", err)
		store = social.NewDemoStore(cfg.Network.UserID)
	}
	defer store.Close()

	l := cfg.Layout()
	log.Printf("Top screen: %dx%d", l.TopWidth, l.TopHeight)
	log.Printf("Bottom screen: %dx%d", l.BottomWidth, l.BottomHeight)

	icons := style.NewIconSet()
	queue := frame.NewQueue(frame.DefaultQueueSize)
	mixer := sound.NewMixer(sound.NewContext(), cfg.Audio)

	var brightness types.BrightnessControl
	if backlight, err := fb.FindBacklight(fs); err == nil {
		backlight.SetBrightness(cfg.Display.Brightness)
		brightness = backlight
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if *useDeck {
		theme, ok := style.ThemeByID(cfg.Theme.Name)
		if !ok {
			theme = style.DefaultTheme()
		}
		deck, err := streamdeck.Open("", queue, nil, icons, theme)
		if err != nil {
			log.Printf("Warning: Stream Deck unavailable: %v", err)
		} else {
			defer deck.Close()
			if brightness == nil {
				brightness = deck
			}
			go func() {
				if err := deck.Listen(ctx); err != nil {
					log.Printf("Stream Deck stopped: %v", err)
				}
			}()
		}
	}

	sys := system.New(system.Options{
		Config:     cfg,
		Store:      store,
		FS:         fs,
		Volume:     mixer,
		Brightness: brightness,
		Icons:      icons,
		SaveConfig: func(c *storage.Config) error {
			return storage.SaveConfig(fs, path, c)
		},
	})

	app := ui.NewApp(sys, ui.AppOptions{
		Queue:         queue,
		Mixer:         mixer,
		FS:            fs,
		ScreenshotDir: filepath.Join(cfg.Paths.Data, "screenshots"),
	})
	defer app.Close()

	w, h := l.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("duoscreen")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Display.Fullscreen)
	ebiten.SetTPS(cfg.Display.FPS)

	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
	queue.Close()
}
