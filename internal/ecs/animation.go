package ecs

import "fmt"

// Clip is a named animation of a model
type Clip struct {
	Name     string
	Duration float64
}

// AnimationsOwner indexes the animation players and clips of a model by name
type AnimationsOwner struct {
	Players map[string]EntityID
	Clips   map[string]Clip
}

// NewAnimationsOwner returns an owner with no players or clips yet
func NewAnimationsOwner() AnimationsOwner {
	return AnimationsOwner{
		Players: make(map[string]EntityID),
		Clips:   make(map[string]Clip),
	}
}

// Lookup resolves a clip and a player entity by name
func (o AnimationsOwner) Lookup(player, clip string) (EntityID, Clip, error) {
	c, ok := o.Clips[clip]
	if !ok {
		return 0, Clip{}, fmt.Errorf("no %q animation clip", clip)
	}
	p, ok := o.Players[player]
	if !ok {
		return 0, Clip{}, fmt.Errorf("no %q animation player", player)
	}
	return p, c, nil
}

// AnimationPlayer plays one clip at a time
type AnimationPlayer struct {
	Clip      Clip
	Elapsed   float64
	Speed     float64
	Repeating bool
	Paused    bool

	// Plays counts play and start requests
	Plays int
}

// NewAnimationPlayer returns an idle player at normal speed
func NewAnimationPlayer() AnimationPlayer {
	return AnimationPlayer{Speed: 1}
}

// Play switches to clip unless it is already the current clip
func (p *AnimationPlayer) Play(clip Clip) *AnimationPlayer {
	p.Plays++
	if p.Clip.Name == clip.Name {
		return p
	}
	p.begin(clip)
	return p
}

// Start restarts clip from the beginning
func (p *AnimationPlayer) Start(clip Clip) *AnimationPlayer {
	p.Plays++
	p.begin(clip)
	return p
}

func (p *AnimationPlayer) begin(clip Clip) {
	p.Clip = clip
	p.Elapsed = 0
	p.Repeating = false
	p.Paused = false
}

// Repeat loops the current clip
func (p *AnimationPlayer) Repeat() *AnimationPlayer {
	p.Repeating = true
	return p
}

// SetSpeed changes the playback rate
func (p *AnimationPlayer) SetSpeed(speed float64) *AnimationPlayer {
	p.Speed = speed
	return p
}

// Tick advances playback
func (p *AnimationPlayer) Tick(dt float64) {
	if p.Paused || p.Clip.Name == "" {
		return
	}
	p.Elapsed += dt * p.Speed
	if p.Clip.Duration <= 0 {
		return
	}
	if p.Repeating {
		for p.Elapsed >= p.Clip.Duration {
			p.Elapsed -= p.Clip.Duration
		}
	} else if p.Elapsed > p.Clip.Duration {
		p.Elapsed = p.Clip.Duration
	}
}

// Finished reports whether a non-repeating clip reached its end
func (p AnimationPlayer) Finished() bool {
	return !p.Repeating && p.Clip.Name != "" && p.Elapsed >= p.Clip.Duration
}

// Progress returns the playback position in [0, 1]
func (p AnimationPlayer) Progress() float64 {
	if p.Clip.Duration <= 0 {
		return 1
	}
	return p.Elapsed / p.Clip.Duration
}

// InitialAnimation starts a repeating clip once the owner's animations are known
type InitialAnimation struct {
	Player string
	Clip   string
}
