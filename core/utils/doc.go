// Package utils provides common utility functions for the farm-manager application.
// It includes helpers for converting loosely typed form/JSON values into the
// booleans and decimals the stock engine works with, and a keyed mutex used to
// serialize work per product or per event.
package utils
