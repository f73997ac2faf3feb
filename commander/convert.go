package commander

// divRoundClosest rounds the quotient to the nearest integer, ties rounded
// away from zero. Operands are never negative here.
func divRoundClosest(a, b int) int {
	return (a + b/2) / b
}

// pwmToDevice converts a 0-255 duty cycle to the controller's 0-100 scale.
func pwmToDevice(v int) int {
	return divRoundClosest(v*100, 255)
}

// pwmFromDevice converts the controller's 0-100 scale back to 0-255.
func pwmFromDevice(v int) int {
	return divRoundClosest(v*255, 100)
}
