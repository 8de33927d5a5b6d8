package failure

//sqlmodel:table name="kinds"
type Kind int
