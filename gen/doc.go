/*
Package gen generates random CNF and QDIMACS formulas meant to stress SAT and QBF solvers.

A formula is fully determined by a seed, the requested mode (propositional or quantified)
and the content of an optional option file. Two runs with the same inputs produce
byte-identical text.

Generating a formula

The simplest way to get a formula is to call Generate and write it out:

    f, err := gen.Generate(gen.Config{Seed: 1})
    if err != nil {
        ...
    }
    f.WriteTo(os.Stdout)

For seed 1 the output starts like this:

    c seed 1
    c width 58
    c scramble -1
    c layers 8
    ...
    c layer[0] = [1..21] w=21 v=21 c=63 r=3.00 q=0
    ...

How formulas are built

Variables are split into contiguous layers. Each layer owns a pool holding both
polarities of its variables; clauses for layer i draw their literals from that pool,
drifting to earlier layers with probability 1/2 per step, so later layers reuse the
variables of earlier ones. When a pool is empty, literals are drawn with replacement from
the layer's range.

After the layer clauses come equality constraints (two binary clauses per pair of
variables) and AND-gate gadgets (one wide clause and one binary clause per tail literal).

In quantified mode every layer may become a universal or existential block in the
QDIMACS prefix. One run out of four keeps the quantifiers; the others are forced back to
propositional CNF.

Option files

An option file lists solver options as "name value min max" lines. Each option is echoed
as a "c --name=value" comment, sometimes replaced by its minimum, its maximum or a random
value in between. These draws happen before the PRNG is reset to the seed, so they never
change the structure of the formula.
*/
package gen
