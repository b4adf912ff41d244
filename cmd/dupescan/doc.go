// Command dupescan finds perceptually duplicate images and videos under
// one or more directory roots, reports them grouped around a canonical
// original, and can delete the redundant copies.
package main
