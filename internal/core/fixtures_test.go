package core_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// car is a simple car.
//
// Args:
//
//	name: The name of the car.
//	color: The color of the car.
//	sided: Either 'left' or 'right'.
type car struct {
	Name  string
	Color string `opt:"default=red"`
	Sided string `opt:"default=left"`
}

func (c car) Run(ctx context.Context, verbose bool) (string, error) {
	if ctx == nil {
		return "", errors.New("no context")
	}

	if verbose {
		return fmt.Sprintf("%s is a %s car driven on the %s", c.Name, c.Color, c.Sided), nil
	}

	return c.Name, nil
}

// garage holds cars.
type garage struct {
	// Capacity is the number of cars that fit.
	Capacity int `opt:"default=2"`
	// The directory to park in.
	Location string
	Lights   bool `opt:"default=false,desc=Whether the lights are on."`

	opened bool
}

func (g *garage) Run() (bool, error) {
	if g.opened {
		return false, errors.New("already open")
	}

	g.opened = true

	return g.Lights, nil
}

// inspection is a car that refuses unknown colors.
type inspection struct {
	// Color is the color to inspect.
	Color string
}

func (i inspection) Run() string {
	return "passed " + i.Color
}

func (i inspection) Validate() error {
	if i.Color != "red" && i.Color != "blue" {
		return fmt.Errorf("unknown color %q", i.Color)
	}

	return nil
}

// paintArgs configures paint.
type paintArgs struct {
	// Color is either "gloss" or "matte".
	Color string `opt:"default=gloss"`
	// Coats is the number of coats.
	Coats int `opt:"default=1"`
	// Tags are labels for the job.
	Tags []string `opt:"default="`
}

// paint paints a wall.
//
// Args:
//
//	coats: How many coats to apply.
func paint(ctx context.Context, args paintArgs) (string, error) {
	if ctx == nil {
		return "", errors.New("no context")
	}

	return fmt.Sprintf("%d coat(s) of %s [%s]", args.Coats, args.Color, strings.Join(args.Tags, " ")), nil
}

// wideArgs has more parameters than there are free short letters.
type wideArgs struct {
	Alpha, Bravo, Charlie, Delta, Echo, Foxtrot, Golf, India   string `opt:"default=x"`
	Juliet, Kilo, Lima, Mike, November, Oscar, Papa, Quebec    string `opt:"default=x"`
	Romeo, Sierra, Tango, Uniform, Whiskey, Xray, Yankee, Zulu string `opt:"default=x"`
	Zeta                                                       string `opt:"default=x"`
}

func wide(args wideArgs) string {
	return args.Zeta
}
