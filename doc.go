// Package gosom is a family of Self-Organizing Map (SOM) learning engines:
// unsupervised competitive-learning models that project high-dimensional
// input vectors onto a low-dimensional grid of prototype vectors while
// preserving topological neighborhood relations.
//
// 🚀 What is gosom?
//
//	A small, deterministic, dependency-light library that brings together:
//		• Grid topology: flat-index ↔ (row,col) bijection + cached pairwise
//		  squared grid distances
//		• Neighborhood kernel: Gaussian influence from grid distance + radius
//		• Decay schedules: exponential, linear and static, with string tags
//		  for lossless serialization
//		• Batch SOM: stable argmin BMU search, accumulate-then-average
//		  once-per-epoch weight updates
//		• Recursive SOM: learned recurrent context matrix, similarity-space
//		  (argmax) BMU selection
//		• Merging SOM: blended historical prototypes, distance-space (argmin)
//		  BMU selection, entropy-driven context-weight adaptation
//		• JSON persistence with documented fallbacks for optional fields
//
// ✨ Why choose gosom?
//
//   - Deterministic by construction – explicit seeds, stable tie-breaking,
//     no global state
//   - Explicit failure – sentinel errors for shape, configuration and
//     deserialization problems; never a silent NaN
//   - Pure Go numerics on gonum – dense matrices and vector math, no cgo
//
// Everything is organized under three subpackages:
//
//	grid/     — map topology and the Gaussian neighborhood kernel
//	schedule/ — learning-rate and radius decay functions
//	som/      — the batch, Recursive and Merging engines + persistence
//
// Quick ASCII intuition for a 3×2 map (width=3, height=2):
//
//	unit indices        grid coordinates (row,col)
//	  0 1                 (0,0) (0,1)
//	  2 3                 (1,0) (1,1)
//	  4 5                 (2,0) (2,1)
//
// Each unit owns one prototype vector; training drags the BMU (and, scaled
// by the kernel, its grid neighbors) toward every input it wins.
//
// Dive into examples/ for runnable scenarios, starting with the classic
// color-palette clustering demo.
//
//	go get github.com/katalvlaran/gosom
package gosom
