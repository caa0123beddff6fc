// Package meshio reads and writes triangle meshes.
//
// Supported formats:
//   - JSON: {"points": [[x,y],...] or [[x,y,z],...], "cells": [[a,b,c],...]}
//     round-trippable, the native format of this toolkit
//   - OFF: the Object File Format, read and write
//   - VTK: legacy ASCII PolyData, write only (step snapshots viewable in
//     ParaView)
//
// Planar meshes may omit the Z coordinate in JSON; it is written back only
// when any point carries a non-zero Z.
package meshio
