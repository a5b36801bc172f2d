// Package paging turns loosely typed page/size/sort/direction query input into
// a validated zero-based PageRequest, and turns a query result back into the
// 1-based wire envelope returned by list endpoints.
package paging
