// Package evergreen renders an interactive 3D Christmas scene on [Ebitengine]:
// a cloud of faceted particles that morphs between a scattered sphere and a
// spiral cone tree, crowned by a pulsing star, inside falling snow and gold
// sparkles, with bloom, tone mapping and a vignette over the top.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene, err := evergreen.NewScene(evergreen.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	evergreen.Run(scene, evergreen.RunConfig{
//		Title: "Evergreen", Width: 1280, Height: 800,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update], [Scene.Draw] and [Scene.Layout] directly.
//
// # Particle transition engine
//
// Every particle carries two home positions, one inside the scatter sphere
// and one on the cone silhouette ([GenerateField]). A single scalar blend,
// stepped once per frame by [BlendController] toward the target of the
// current [Mode], interpolates between them. [Evaluate] rewrites the model
// matrix of every particle into a preallocated [TransformArena] each frame
// without allocating, and an [InstancedMesh] draws the whole population in
// one DrawTriangles32 call.
//
// # Shell
//
// The [Shell] owns the mode and the greeting visibility. [Shell.Toggle] flips
// the mode and schedules the greeting reveal on a generation-tagged [Timers]
// queue; reversing the mode cancels it. [Shell.SurfaceTap] behaves like
// Toggle while scattered and flips the greeting while assembled. Timers only
// fire inside [Scene.Step].
//
// # Testing
//
// Scenes can be driven headlessly with [Scene.Step]. Scripted visual runs use
// [LoadTestScript] with synthetic input ([Scene.InjectClick],
// [Scene.InjectDrag]) and [Scene.Screenshot].
//
// Events can be forwarded to a Donburi world through the evergreen/ecs
// package, and the evergreen/termsink package renders the same scene into a
// terminal.
//
// [Ebitengine]: https://ebitengine.org
package evergreen
