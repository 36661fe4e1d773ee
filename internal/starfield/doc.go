// Package starfield implements the warp starfield engine.
//
// A [Field] owns a fixed array of [Star] values and one random source. Each
// frame it clears the renderer, then walks the stars in index order:
//
//   - [Star.Update] moves the star toward the viewer and recycles it to the
//     far plane once its depth drops below 1
//   - [Star.Show] projects the current and previous depth onto the screen
//     and strokes one line between them
//
// # Example
//
//	f, err := starfield.New(starfield.DefaultConfig(), starfield.Ports{
//		Display:  display,
//		Renderer: canvas,
//		Input:    hal.Fixed(5),
//	})
//	if err != nil {
//		return err
//	}
//	for {
//		if err := f.Update(); err != nil {
//			return err
//		}
//	}
//
// # Determinism
//
// With a fixed seed and the same sequence of speeds, two fields produce the
// same star states frame for frame. Fields are NOT safe for concurrent use.
package starfield
