// Package models defines the maintenance event table and the request and
// response shapes of the maintenance feature.
package models
