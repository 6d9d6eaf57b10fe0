// Package csv loads transition tables from CSV files with the header
// lhs_state,input,rhs_state,replacement,direction.
package csv
