// Package pan implements a pointer-driven horizontal panning engine.
//
// A container (the viewport) holds a wider content strip. As the pointer
// moves across the container the strip is translated left so that the
// pointer's fractional position inside the container maps onto the same
// fraction of the overflowing content:
//
//   - [Bounds]: measured container and content geometry
//   - [PanState]: target offset, eased running offset and decaying speed
//   - [Options]: typed configuration, merged with [Override]
//   - [Widget]: one panning instance bound to a single [Host] element
//
// The engine never touches a real display. Layout reads, surface writes,
// pointer events and the per-frame scheduler are all supplied by a [Host].
//
// # Render loop
//
// Once a widget is initialized it requests a frame from the host and keeps
// requesting one every frame for its whole life, playing or paused. A
// paused widget consumes its frame without changing state:
//
//	w := pan.New(host, signal, &pan.Override{PauseOnMouseOut: pan.Bool(false)})
//	host.MovePointer(180) // target offset follows the pointer
//	host.Frame()          // running offset eases toward the target
//
// # Degenerate geometry
//
// A zero-width container yields non-finite offsets. They propagate through
// the loop as NaN and are written to the surface unchanged; nothing panics.
package pan
