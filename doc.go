// Copyright 2026 The Monkeyboard Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package monkeyboard is the input-processing core of a programmable
// mechanical-keyboard firmware layer. It turns the raw press/release
// stream produced by a matrix scanner into the stream of logical key
// reports delivered to a host: taps, holds, layer changes, combos,
// one-shot modifiers and key replacements.
//
// The package owns four things: the press buffer and event buffer pair
// that record real-time keyboard state and a replayable event history
// with stable press identity, the pipeline executor that drives
// user-installed transformations over that history (with support for
// capturing events pending a timeout), the layer manager that resolves
// a key position to a keycode against a stack of nested layer
// activations, and the keycode taxonomy shared by every transformation.
//
// Everything outside of that - the matrix scanner, the HID reporter,
// the deferred-execution timer source, and the transformation plugins
// themselves - is an external collaborator reached through the
// interfaces in reporter.go, scheduler.go and pipeline.go.
package monkeyboard
