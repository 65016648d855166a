// Package arithmetic provides the add, multiply, and divide tools advertised
// to the model. All three are pure, stateless functions over two numeric
// operands; divide fails explicitly on a zero divisor.
package arithmetic
