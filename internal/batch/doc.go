// Package batch runs many generation requests through a fixed pool of
// workers and collects the results in submission order.
package batch
