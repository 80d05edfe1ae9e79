// Package types defines the Cupboard and Table interfaces, the Category and
// Item entities, and the error taxonomy for the wishlist storage system.
package types
