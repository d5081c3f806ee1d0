package screens

import (
	"github.com/user-none/duoscreen/ui/style"
	"github.com/user-none/duoscreen/ui/types"
)

// App ids
const (
	AppSettings = "settings"
	AppMusic    = "music"
	AppFriends  = "friends"
	AppChat     = "chat"
	AppBrowser  = "browser"
)

// AppInfo describes one entry of the home grid.
type AppInfo struct {
	ID   string
	Name string
	Icon string // style.Icon* name
}

// Factory builds a fresh app screen.
type Factory func(env *Env) types.Screen

// Registry maps app ids to factories and keeps the home grid order.
type Registry struct {
	apps      []AppInfo
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns the built-in apps in home grid order.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(AppInfo{ID: AppSettings, Name: "Settings", Icon: style.IconSettings}, func(env *Env) types.Screen { return NewSettings(env) })
	r.Register(AppInfo{ID: AppMusic, Name: "Music", Icon: style.IconMusic}, func(env *Env) types.Screen { return NewMusic(env) })
	r.Register(AppInfo{ID: AppFriends, Name: "Friends", Icon: style.IconFriends}, func(env *Env) types.Screen { return NewFriends(env) })
	r.Register(AppInfo{ID: AppChat, Name: "Chat", Icon: style.IconChat}, func(env *Env) types.Screen { return NewChat(env, nil) })
	r.Register(AppInfo{ID: AppBrowser, Name: "Browser", Icon: style.IconBrowser}, func(env *Env) types.Screen { return NewBrowser(env) })
	return r
}

// Register adds an app. Registering an existing id replaces its factory and
// keeps its grid position.
func (r *Registry) Register(info AppInfo, f Factory) {
	if _, ok := r.factories[info.ID]; !ok {
		r.apps = append(r.apps, info)
	} else {
		for i := range r.apps {
			if r.apps[i].ID == info.ID {
				r.apps[i] = info
			}
		}
	}
	r.factories[info.ID] = f
}

// Apps returns the registered apps in grid order.
func (r *Registry) Apps() []AppInfo {
	return r.apps
}

// Get returns the factory for id.
func (r *Registry) Get(id string) (Factory, bool) {
	f, ok := r.factories[id]
	return f, ok
}

// Launch builds the app and pushes it onto the navigation stack.
func (r *Registry) Launch(env *Env, id string) bool {
	f, ok := r.factories[id]
	if !ok {
		return false
	}
	env.Nav.Push(f(env))
	return true
}
