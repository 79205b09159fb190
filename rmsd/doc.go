/*
Package rmsd implements rigid body superposition of two equal length sets of
alpha-carbon coordinates using a version of the Kabsch algorithm that is
described in detail here: http://cnx.org/content/m11608/latest/

Besides the plain RMSD, Superpose returns the optimal Transform itself, which
is what the symmetry machinery needs in order to recover rotation axes. A
TM-score helper is also provided, since RMSD alone is a poor measure of
similarity for partial alignments.
*/
package rmsd
